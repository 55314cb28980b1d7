// @title        pcforge catalog API
// @version      1.0
// @description  Catalog, configurator and normalized product API of the pcforge shop.
// @BasePath     /
package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/dcastanog/pcforge/docs"
	"github.com/dcastanog/pcforge/internal/component"
	"github.com/dcastanog/pcforge/internal/config"
	"github.com/dcastanog/pcforge/internal/configuration"
	"github.com/dcastanog/pcforge/internal/httpx"
	"github.com/dcastanog/pcforge/internal/product"
)

func newRouter(components component.Repository, configurations configuration.Repository, origin string) *gin.Engine {
	resolver := product.NewResolver(components, configurations)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS(origin))

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/products", listProductsHandler(components, configurations))
	r.GET("/products/:id", getProductHandler(resolver))
	r.GET("/categories", listCategoriesHandler(components))

	r.GET("/components/:id", getComponentHandler(components))
	r.POST("/components", createComponentHandler(components))
	r.PUT("/components/:id", updateComponentHandler(components))
	r.DELETE("/components/:id", deleteComponentHandler(components))

	r.POST("/configurations", createConfigurationHandler(configurations, components))
	r.GET("/configurations/:id", getConfigurationHandler(configurations))
	r.PUT("/configurations/:id", updateConfigurationHandler(configurations, components))
	r.PUT("/configurations/:id/status", updateConfigurationStatusHandler(configurations))
	r.DELETE("/configurations/:id", deleteConfigurationHandler(configurations))

	return r
}

func main() {
	cfg := config.Load()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	r := newRouter(component.NewPGRepo(pool), configuration.NewPGRepo(pool), cfg.AllowOrigin)

	log.Printf("catalog-service listening on %s", cfg.CatalogAddr)
	log.Fatal(r.Run(cfg.CatalogAddr))
}
