package api

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/session"

	"github.com/go-chi/chi/v5"
)

const multipartMemory = 8 << 20

// @Summary      List photos
// @Description  Returns every photo owned by the caller, oldest first.
// @Tags         photos
// @Produce      json
// @Success      200  {array}   models.Photo
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /photos/ [get]
func (s *Server) ListPhotosHandler(w http.ResponseWriter, r *http.Request, id session.Identity) {
	photos, err := s.gallery.ListPhotos(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, photos)
}

// @Summary      Upload a photo
// @Description  Stores a png, jpg, jpeg or gif image. The content must really be an image.
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Param        photo        formData  file    true   "Image file"
// @Param        description  formData  string  false  "Free-text description"
// @Success      201          {object}  models.Photo
// @Failure      400          {object}  ErrorResponse  "No photo provided, No selected file, File type not allowed, Invalid file type or File too large"
// @Failure      401          {object}  ErrorResponse
// @Failure      500          {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /photos/upload [post]
func (s *Server) UploadPhotoHandler(w http.ResponseWriter, r *http.Request, id session.Identity) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Storage.MaxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondServiceError(w, r, gallery.ErrFileTooLarge)
			return
		}
		respondServiceError(w, r, gallery.ErrNoPhoto)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("photo")
	if err != nil {
		// A part sent with an empty filename is parsed as a plain value.
		if errors.Is(err, http.ErrMissingFile) && len(r.MultipartForm.Value["photo"]) > 0 {
			respondServiceError(w, r, gallery.ErrNoSelectedFile)
			return
		}
		respondServiceError(w, r, gallery.ErrNoPhoto)
		return
	}
	defer file.Close()

	photo, err := s.gallery.UploadPhoto(r.Context(), id.UserID, gallery.Upload{
		Filename:    header.Filename,
		Content:     file,
		Description: r.FormValue("description"),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, photo)
}

// @Summary      Fetch photo bytes
// @Tags         photos
// @Produce      image/png
// @Produce      image/jpeg
// @Produce      image/gif
// @Param        photoId  path      int  true  "Photo ID"
// @Success      200      {file}    binary
// @Failure      401      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse  "Photo not found or Photo file not found"
// @Security     SessionCookie
// @Router       /photos/{photoId} [get]
func (s *Server) GetPhotoHandler(w http.ResponseWriter, r *http.Request, id session.Identity) {
	photoID, ok := photoIDParam(r)
	if !ok {
		respondServiceError(w, r, gallery.ErrPhotoNotFound)
		return
	}

	content, err := s.gallery.OpenPhoto(r.Context(), id.UserID, photoID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	defer content.Body.Close()

	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{
		"filename": content.Photo.OriginalFilename,
	}))
	if content.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(content.Size, 10))
	}

	if _, err := io.Copy(w, content.Body); err != nil {
		log.Printf("WARN: Failed to stream photo %d: %v", photoID, err)
	}
}

// @Summary      Delete a photo
// @Tags         photos
// @Param        photoId  path  int  true  "Photo ID"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /photos/{photoId} [delete]
func (s *Server) DeletePhotoHandler(w http.ResponseWriter, r *http.Request, id session.Identity) {
	photoID, ok := photoIDParam(r)
	if !ok {
		respondServiceError(w, r, gallery.ErrPhotoNotFound)
		return
	}

	if err := s.gallery.DeletePhoto(r.Context(), id.UserID, photoID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func photoIDParam(r *http.Request) (int64, bool) {
	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoId"), 10, 64)
	if err != nil || photoID <= 0 {
		return 0, false
	}
	return photoID, true
}
