package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/infrastructure/http/response"
)

// maxUploadSize bounds multipart parsing memory for product images.
const maxUploadSize = 10 << 20 // 10 MiB

type CatalogHandler struct {
	catalog inbound.CatalogUseCase
}

func NewCatalogHandler(catalog inbound.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", product)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), inbound.CreateProductRequest{
		Name:        form.name,
		Price:       form.price,
		Description: form.description,
		Image:       form.image,
	})
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Product created successfully", product)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	form, err := parseProductForm(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, inbound.UpdateProductRequest{
		Name:        form.name,
		Price:       form.price,
		Description: form.description,
		Image:       form.image,
	})
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Product updated successfully", product)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		response.AppError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Product deleted successfully", nil)
}

type productForm struct {
	name        string
	price       int64
	description string
	image       *inbound.ImageUpload
}

func parseProductForm(r *http.Request) (*productForm, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, errInvalidForm
	}

	price, err := strconv.ParseInt(r.FormValue("price"), 10, 64)
	if err != nil {
		return nil, errInvalidPrice
	}

	form := &productForm{
		name:        r.FormValue("name"),
		price:       price,
		description: r.FormValue("description"),
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		form.image = &inbound.ImageUpload{
			Reader:      file,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
	} else if err != http.ErrMissingFile {
		return nil, errInvalidForm
	}

	return form, nil
}

var (
	errInvalidForm  = formError("Invalid multipart form")
	errInvalidPrice = formError("Invalid price")
)

type formError string

func (e formError) Error() string { return string(e) }
