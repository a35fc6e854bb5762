package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/plateful/pricing-service/internal/optimizer"
)

// ListStores handles store catalog listing
// GET /internal/stores
func ListStores(c *gin.Context) {
	if storeCatalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store catalog not initialized"})
		return
	}

	stores := make([]optimizer.StoreInfo, 0, len(storeCatalog))
	for _, name := range storeCatalog.Names() {
		info, _ := storeCatalog.Lookup(name)
		stores = append(stores, info)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].Name < stores[j].Name })

	c.JSON(http.StatusOK, gin.H{
		"stores": stores,
		"total":  len(stores),
	})
}
