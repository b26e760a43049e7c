package handler

import (
	"strings"

	"github.com/fabioverbena/Event-Manager/internal/application/service"
	"github.com/fabioverbena/Event-Manager/internal/domain/enum"
	"github.com/fabioverbena/Event-Manager/internal/domain/repository"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/request"
	"github.com/fabioverbena/Event-Manager/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	documents      *service.DocumentService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, documents *service.DocumentService) *ProductHandler {
	return &ProductHandler{productService: productService, documents: documents}
}

// List handles listing available products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Parametri non validi")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: pageParams(c),
		Search:     filter.Search,
	}
	if filter.CategoryID != "" {
		id, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			response.BadRequest(c, "Categoria non valida")
			return
		}
		params.CategoryID = &id
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Prodotti recuperati", result)
}

// Search handles the product typeahead of the order form
func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.productService.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prodotti trovati", products)
}

// GenerateCode suggests the next free code for a product name
func (h *ProductHandler) GenerateCode(c *gin.Context) {
	code, err := h.productService.GenerateCode(c.Request.Context(), c.Query("nome"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Codice generato", gin.H{"codice_prodotto": code})
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		CategoryID:  req.CategoriaID,
		Code:        req.Codice,
		Name:        req.Nome,
		Description: req.Descrizione,
		ListPrice:   req.PrezzoListino,
		Unit:        enum.Unit(strings.ToLower(req.UnitaMisura)),
		Notes:       req.Note,
		ImageURL:    req.ImmagineURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Prodotto creato", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prodotto recuperato", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateProductInput{
		ID:          id,
		CategoryID:  req.CategoriaID,
		Code:        req.Codice,
		Name:        req.Nome,
		Description: req.Descrizione,
		ListPrice:   req.PrezzoListino,
		Available:   req.Disponibile,
		Notes:       req.Note,
		ImageURL:    req.ImmagineURL,
	}
	if req.UnitaMisura != nil {
		unit := enum.Unit(strings.ToLower(*req.UnitaMisura))
		input.Unit = &unit
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prodotto aggiornato", product)
}

// Delete handles marking a product unavailable
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Import handles a CSV upload in the multipart field "file"
func (h *ProductHandler) Import(c *gin.Context) {
	file, ok := uploadedFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.productService.ImportProducts(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Importazione completata", result)
}

// Template handles downloading the product import template
func (h *ProductHandler) Template(c *gin.Context) {
	f, err := h.documents.ImportTemplate("prodotti", c.Query("format") == "xlsx")
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, f)
}

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles listing the active category tree
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categorie recuperate", categories)
}

// Create handles creating a category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req request.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &service.CreateCategoryInput{
		Name:         req.Nome,
		ParentID:     req.ParentID,
		OrderType:    enum.OrderType(req.TipoOrdine),
		DisplayOrder: req.OrdineVisualizzazione,
		Description:  req.Descrizione,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Categoria creata", category)
}

// Get handles getting a single category
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categoria recuperata", category)
}

// Update handles updating a category
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), &service.UpdateCategoryInput{
		ID:           id,
		Name:         req.Nome,
		DisplayOrder: req.OrdineVisualizzazione,
		Description:  req.Descrizione,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categoria aggiornata", category)
}

// Delete handles deactivating a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
