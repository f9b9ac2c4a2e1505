package gallery

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"photo-gallery/internal/auth"
	"photo-gallery/internal/database"
	"photo-gallery/internal/models"
	"photo-gallery/internal/storage"
)

const sniffLen = 512

// Notifier receives events for a user's live connections.
type Notifier interface {
	PublishEvent(userID int64, eventData []byte)
}

type Event struct {
	Type    string        `json:"type"`
	Photo   *models.Photo `json:"photo,omitempty"`
	PhotoID int64         `json:"photo_id,omitempty"`
}

const (
	EventPhotoUploaded = "photo_uploaded"
	EventPhotoDeleted  = "photo_deleted"
)

type Service struct {
	store    database.Store
	blobs    storage.BlobStore
	notifier Notifier
}

// NewService wires the gallery operations. notifier may be nil.
func NewService(store database.Store, blobs storage.BlobStore, notifier Notifier) *Service {
	return &Service{store: store, blobs: blobs, notifier: notifier}
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

func (s *Service) Register(ctx context.Context, arg RegisterParams) (*models.User, error) {
	if isBlank(arg.Username) || isBlank(arg.Email) || arg.Password == "" {
		return nil, ErrMissingFields
	}

	hash, err := auth.HashPassword(arg.Password)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		existing, err := q.GetUserByUsername(ctx, arg.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrUsernameExists
		}

		existing, err = q.GetUserByEmail(ctx, arg.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailExists
		}

		user, err = q.CreateUser(ctx, database.CreateUserParams{
			Username:     arg.Username,
			Email:        arg.Email,
			PasswordHash: hash,
		})
		return err
	})

	switch {
	case errors.Is(err, database.ErrUsernameTaken):
		return nil, ErrUsernameExists
	case errors.Is(err, database.ErrEmailTaken):
		return nil, ErrEmailExists
	case err != nil:
		return nil, err
	}

	return user, nil
}

// Login checks a username/password pair. Unknown users cost the same bcrypt
// work as a wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		auth.BurnPasswordCheck(password)
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) User(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (s *Service) ListPhotos(ctx context.Context, ownerID int64) ([]models.Photo, error) {
	return s.store.ListPhotosByOwner(ctx, ownerID)
}

type Upload struct {
	Filename    string
	Content     io.Reader
	Description string
}

// UploadPhoto validates and stores a new photo. The blob is written before
// its content is inspected, and the sniffed type must match the extension;
// every rejection after that point removes the blob.
func (s *Service) UploadPhoto(ctx context.Context, ownerID int64, upload Upload) (*models.Photo, error) {
	if upload.Filename == "" {
		uploadRejections.WithLabelValues("no_selected_file").Inc()
		return nil, ErrNoSelectedFile
	}

	ext, ok := AllowedExtension(upload.Filename)
	if !ok {
		uploadRejections.WithLabelValues("extension").Inc()
		return nil, ErrFileTypeNotAllowed
	}

	originalFilename := SanitizeFilename(upload.Filename)
	if originalFilename == "" {
		originalFilename = "photo." + ext
	}

	filename := StoredName(ext)
	if err := s.blobs.Save(ctx, filename, upload.Content); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			uploadRejections.WithLabelValues("too_large").Inc()
			return nil, ErrFileTooLarge
		}
		return nil, err
	}

	contentType, err := s.sniff(ctx, filename)
	if err != nil {
		s.discardBlob(ctx, filename)
		return nil, err
	}
	if !MatchesExtension(ext, contentType) {
		s.discardBlob(ctx, filename)
		uploadRejections.WithLabelValues("content").Inc()
		return nil, ErrInvalidFileType
	}

	photo, err := s.store.CreatePhoto(ctx, database.CreatePhotoParams{
		Filename:         filename,
		OriginalFilename: originalFilename,
		Description:      upload.Description,
		UserID:           ownerID,
	})
	if err != nil {
		s.discardBlob(ctx, filename)
		return nil, err
	}

	photosUploaded.Inc()
	s.publish(ownerID, Event{Type: EventPhotoUploaded, Photo: photo})

	return photo, nil
}

func (s *Service) sniff(ctx context.Context, filename string) (string, error) {
	rc, err := s.blobs.Open(ctx, filename)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

func (s *Service) discardBlob(ctx context.Context, filename string) {
	if err := s.blobs.Delete(ctx, filename); err != nil {
		orphanedBlobs.Inc()
		log.Printf("WARN: failed to remove rejected upload %s: %v", filename, err)
	}
}

// ownedPhoto loads a photo and checks that ownerID may access it.
func (s *Service) ownedPhoto(ctx context.Context, ownerID, photoID int64) (*models.Photo, error) {
	photo, err := s.store.GetPhotoByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, ErrPhotoNotFound
	}
	if photo.UserID != ownerID {
		return nil, ErrForbidden
	}
	return photo, nil
}

type PhotoContent struct {
	Photo       *models.Photo
	ContentType string
	// Size is -1 when the backend does not report it.
	Size int64
	Body io.ReadCloser
}

// OpenPhoto returns the stored bytes of a photo. The caller closes Body.
func (s *Service) OpenPhoto(ctx context.Context, ownerID, photoID int64) (*PhotoContent, error) {
	photo, err := s.ownedPhoto(ctx, ownerID, photoID)
	if err != nil {
		return nil, err
	}

	rc, err := s.blobs.Open(ctx, photo.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return nil, ErrPhotoFileNotFound
		}
		return nil, err
	}

	content := &PhotoContent{
		Photo:       photo,
		ContentType: mime.TypeByExtension(filepath.Ext(photo.Filename)),
		Size:        -1,
		Body:        rc,
	}
	if f, ok := rc.(interface{ Stat() (fs.FileInfo, error) }); ok {
		if info, err := f.Stat(); err == nil {
			content.Size = info.Size()
		}
	}
	if content.ContentType == "" {
		br := bufio.NewReaderSize(rc, sniffLen)
		head, _ := br.Peek(sniffLen)
		content.ContentType = http.DetectContentType(head)
		content.Body = struct {
			io.Reader
			io.Closer
		}{br, rc}
	}

	return content, nil
}

// DeletePhoto removes the record first and the blob after the commit, so a
// failure in between can leave an unreferenced file but never a record
// without bytes.
func (s *Service) DeletePhoto(ctx context.Context, ownerID, photoID int64) error {
	var photo *models.Photo
	err := s.store.ExecTx(ctx, func(q database.Querier) error {
		var err error
		photo, err = q.GetPhotoByID(ctx, photoID)
		if err != nil {
			return err
		}
		if photo == nil {
			return ErrPhotoNotFound
		}
		if photo.UserID != ownerID {
			return ErrForbidden
		}

		deleted, err := q.DeletePhoto(ctx, photoID, ownerID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrPhotoNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, photo.Filename); err != nil {
		orphanedBlobs.Inc()
		log.Printf("WARN: photo %d deleted but blob %s was not removed: %v", photoID, photo.Filename, err)
	}

	photosDeleted.Inc()
	s.publish(ownerID, Event{Type: EventPhotoDeleted, PhotoID: photoID})

	return nil
}

func (s *Service) publish(userID int64, event Event) {
	if s.notifier == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("WARN: failed to marshal %s event: %v", event.Type, err)
		return
	}
	s.notifier.PublishEvent(userID, data)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
