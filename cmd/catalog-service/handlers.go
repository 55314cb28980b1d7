package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastanog/pcforge/internal/component"
	"github.com/dcastanog/pcforge/internal/configuration"
	"github.com/dcastanog/pcforge/internal/product"
)

// templatesCategory is the pseudo-category the storefront uses to list the
// public template builds instead of a catalog category.
const templatesCategory = "templates"

// parseFilterState maps the request query onto the filter engine input.
func parseFilterState(c *gin.Context) (product.State, error) {
	st := product.State{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Sort:     product.SortKey(c.Query("sort")),
	}
	if tags := strings.TrimSpace(c.Query("tags")); tags != "" {
		st.Tags = strings.Split(tags, ",")
	}
	if v := c.Query("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return st, errors.New("invalid min_price")
		}
		st.MinPrice = &d
	}
	if v := c.Query("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return st, errors.New("invalid max_price")
		}
		st.MaxPrice = &d
	}
	return st, nil
}

// parsePage reads limit/offset and normalizes them to what the repos will
// actually apply, so the response envelope echoes the effective values.
func parsePage(c *gin.Context) (limit, offset int, err error) {
	limit, offset = 50, 0
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("invalid limit")
		}
	}
	if v := c.Query("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("invalid offset")
		}
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, nil
}

// GET /products
// @Summary      List normalized products
// @Description  Normalizes catalog components or template builds and applies search, tag, price and sort filters in memory.
// @Tags         products
// @Produce      json
// @Param        category   query  string  false  "category slug, or 'templates'"
// @Param        q          query  string  false  "free-text search"
// @Param        tags       query  string  false  "comma-separated filter tags"
// @Param        min_price  query  string  false  "inclusive lower price bound"
// @Param        max_price  query  string  false  "inclusive upper price bound"
// @Param        sort       query  string  false  "price_asc|price_desc|name|rating"
// @Param        limit      query  int     false  "page size, max 50"
// @Param        offset     query  int     false  "rows to skip"
// @Success      200  {array}   product.Product
// @Failure      400  {object}  component.HTTPError
// @Router       /products [get]
func listProductsHandler(components component.Repository, configurations configuration.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := parseFilterState(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: err.Error()})
			return
		}
		limit, offset, err := parsePage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: err.Error()})
			return
		}

		var products []product.Product
		if st.Category == templatesCategory {
			cfgs, err := configurations.ListTemplates(c.Request.Context(), true, limit, offset)
			if err != nil {
				c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "list templates"})
				return
			}
			for i := range cfgs {
				p, err := product.FromConfiguration(&cfgs[i])
				if err != nil {
					log.Printf("[products] normalize configuration %s: %v", cfgs[i].ID, err)
					c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "normalize"})
					return
				}
				products = append(products, *p)
			}
		} else {
			rows, err := components.List(c.Request.Context(), component.Query{CategorySlug: st.Category, Limit: limit, Offset: offset})
			if err != nil {
				c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "list components"})
				return
			}
			for i := range rows {
				p, err := product.FromComponent(&rows[i])
				if err != nil {
					// unknown category type or broken spec: integrity error
					log.Printf("[products] normalize component %s: %v", rows[i].ID, err)
					c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "normalize"})
					return
				}
				products = append(products, *p)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"items":  product.Apply(products, st),
			"limit":  limit,
			"offset": offset,
		})
	}
}

// GET /products/:id
// @Summary      Get one normalized product
// @Description  Tries template configurations, then catalog components, then user configurations; first match wins.
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "entity id"
// @Success      200  {object}  product.Product
// @Failure      404  {object}  component.HTTPError
// @Router       /products/{id} [get]
func getProductHandler(resolver *product.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := resolver.Resolve(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				c.JSON(http.StatusNotFound, component.HTTPError{Error: "product not found"})
				return
			}
			log.Printf("[products] resolve %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "resolve"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// GET /categories
func listCategoriesHandler(repo component.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := repo.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "list categories"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": cats})
	}
}

// GET /components/:id
func getComponentHandler(repo component.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, component.HTTPError{Error: "component not found"})
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

// POST /components
func createComponentHandler(repo component.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req component.CreateComponentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "invalid body"})
			return
		}
		if req.Name == "" || req.Price == "" || req.CategoryID == "" || req.Stock < 0 {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "name, price and category_id are required; stock must be >= 0"})
			return
		}
		if _, err := decimal.NewFromString(req.Price); err != nil {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "invalid price"})
			return
		}
		cat, err := repo.CategoryByID(c.Request.Context(), req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "unknown category"})
			return
		}
		// decode against the category's kind so a malformed sub-record is
		// rejected at the boundary instead of surfacing on reads
		spec, err := component.DecodeSpec(component.Kind(cat.Slug), req.Spec)
		if err != nil {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "invalid spec for category " + cat.Slug})
			return
		}

		row := &component.Component{
			ID:              uuid.NewString(),
			Name:            req.Name,
			Description:     req.Description,
			LongDescription: req.LongDescription,
			Price:           req.Price,
			DiscountPrice:   req.DiscountPrice,
			ImageURL:        req.ImageURL,
			Stock:           req.Stock,
			CategoryID:      req.CategoryID,
			Spec:            spec,
		}
		if err := repo.Create(c.Request.Context(), row); err != nil {
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "create component"})
			return
		}
		// re-read to return the row with its category and decoded spec
		out, err := repo.GetByID(c.Request.Context(), row.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "reload component"})
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// PUT /components/:id
func updateComponentHandler(repo component.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req component.UpdateComponentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "invalid body"})
			return
		}
		cur, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, component.HTTPError{Error: "component not found"})
			return
		}

		updatePrice := req.Price != ""
		if updatePrice {
			if _, err := decimal.NewFromString(req.Price); err != nil {
				c.JSON(http.StatusBadRequest, component.HTTPError{Error: "invalid price"})
				return
			}
			cur.Price = req.Price
			cur.DiscountPrice = req.DiscountPrice
		}
		cur.Name = req.Name
		cur.Description = req.Description
		if req.Stock != nil {
			if *req.Stock < 0 {
				c.JSON(http.StatusBadRequest, component.HTTPError{Error: "invalid stock"})
				return
			}
			cur.Stock = *req.Stock
		}

		if err := repo.Update(c.Request.Context(), cur, updatePrice); err != nil {
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "update component"})
			return
		}
		out, err := repo.GetByID(c.Request.Context(), cur.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "reload component"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// DELETE /components/:id
func deleteComponentHandler(repo component.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "delete component"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, component.HTTPError{Error: "component not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// POST /configurations
func createConfigurationHandler(configurations configuration.Repository, components component.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req configuration.CreateConfigurationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "invalid body"})
			return
		}
		if req.Name == "" || len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "name and items are required"})
			return
		}

		// price the lines against the current catalog; the total is fixed now
		// and not recomputed when component prices change later
		items := make([]configuration.Item, 0, len(req.Items))
		for _, in := range req.Items {
			if in.Quantity <= 0 {
				c.JSON(http.StatusBadRequest, component.HTTPError{Error: "quantity must be > 0"})
				return
			}
			row, err := components.GetByID(c.Request.Context(), in.ComponentID)
			if err != nil {
				c.JSON(http.StatusBadRequest, component.HTTPError{Error: "unknown component " + in.ComponentID})
				return
			}
			it := configuration.Item{
				ComponentID: row.ID,
				Name:        row.Name,
				Price:       row.Price,
				Quantity:    in.Quantity,
			}
			if row.Category != nil {
				it.Category = row.Category.Name
			}
			items = append(items, it)
		}
		total, err := product.LineTotal(items)
		if err != nil {
			log.Printf("[configurations] total: %v", err)
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "total"})
			return
		}

		cfg := &configuration.Configuration{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			TotalPrice:  total,
			IsTemplate:  req.IsTemplate,
			IsPublic:    req.IsTemplate && req.IsPublic, // is_public only means something on templates
			Status:      configuration.StatusDraft,
		}
		if err := configurations.Create(c.Request.Context(), cfg, items); err != nil {
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "create configuration"})
			return
		}
		out, err := configurations.GetByID(c.Request.Context(), cfg.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "reload configuration"})
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// GET /configurations/:id
func getConfigurationHandler(repo configuration.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, component.HTTPError{Error: "configuration not found"})
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}

// PUT /configurations/:id
func updateConfigurationHandler(configurations configuration.Repository, components component.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req configuration.CreateConfigurationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "invalid body"})
			return
		}
		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "items are required"})
			return
		}

		cur, err := configurations.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, configuration.ErrNotFound) {
				c.JSON(http.StatusNotFound, component.HTTPError{Error: "configuration not found"})
				return
			}
			log.Printf("[configurations] load %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "load configuration"})
			return
		}

		// re-price every line against the current catalog; the stored total
		// reflects the build as of this update
		items := make([]configuration.Item, 0, len(req.Items))
		for _, in := range req.Items {
			if in.Quantity <= 0 {
				c.JSON(http.StatusBadRequest, component.HTTPError{Error: "quantity must be > 0"})
				return
			}
			row, err := components.GetByID(c.Request.Context(), in.ComponentID)
			if err != nil {
				c.JSON(http.StatusBadRequest, component.HTTPError{Error: "unknown component " + in.ComponentID})
				return
			}
			it := configuration.Item{
				ComponentID: row.ID,
				Name:        row.Name,
				Price:       row.Price,
				Quantity:    in.Quantity,
			}
			if row.Category != nil {
				it.Category = row.Category.Name
			}
			items = append(items, it)
		}
		total, err := product.LineTotal(items)
		if err != nil {
			log.Printf("[configurations] total: %v", err)
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "total"})
			return
		}

		cur.Name = req.Name
		cur.Description = req.Description
		cur.TotalPrice = total
		cur.IsPublic = cur.IsTemplate && req.IsPublic
		if err := configurations.Replace(c.Request.Context(), cur, items); err != nil {
			if errors.Is(err, configuration.ErrNotFound) {
				c.JSON(http.StatusNotFound, component.HTTPError{Error: "configuration not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "update configuration"})
			return
		}
		out, err := configurations.GetByID(c.Request.Context(), cur.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "reload configuration"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// PUT /configurations/:id/status
func updateConfigurationStatusHandler(repo configuration.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req configuration.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "invalid body"})
			return
		}
		err := repo.UpdateStatus(c.Request.Context(), c.Param("id"), strings.ToUpper(req.Status))
		switch {
		case errors.Is(err, configuration.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, component.HTTPError{Error: "invalid status"})
		case errors.Is(err, configuration.ErrNotFound):
			c.JSON(http.StatusNotFound, component.HTTPError{Error: "configuration not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "update status"})
		default:
			c.Status(http.StatusNoContent)
		}
	}
}

// DELETE /configurations/:id
func deleteConfigurationHandler(repo configuration.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, component.HTTPError{Error: "delete configuration"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, component.HTTPError{Error: "configuration not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
