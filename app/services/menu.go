package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/app/repositories"
	"github.com/ruangkopi/cafe/config"
	"github.com/ruangkopi/cafe/pkg/auth"
	"github.com/ruangkopi/cafe/pkg/logger"
	"github.com/ruangkopi/cafe/pkg/storage"
)

// MaxPrice caps a catalog price so that order totals and revenue sums stay
// well inside int64.
const MaxPrice int64 = 1_000_000_000_000

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// MenuInput is a create or partial-update body. On update, nil fields are
// left unchanged.
type MenuInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *FlexInt `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
}

// Upload is an image file received with a menu mutation.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type MenuService struct {
	menu *repositories.MenuRepository
	disk storage.Disk
}

func NewMenuService(menu *repositories.MenuRepository, disk storage.Disk) *MenuService {
	return &MenuService{menu: menu, disk: disk}
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (models.Category, error) {
	c := models.Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", invalidInput("Invalid category")
	}
	return c, nil
}

// List returns the catalog newest first. An empty category lists all.
func (s *MenuService) List(ctx context.Context, category string) ([]models.MenuItem, error) {
	if strings.TrimSpace(category) == "" {
		return s.menu.List(ctx, nil)
	}
	c, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.menu.List(ctx, &c)
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.menu.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Menu item not found")
	}
	return item, nil
}

// Create adds a catalog entry. Name, category and price are required.
func (s *MenuService) Create(ctx context.Context, actor auth.Identity, in MenuInput, img *Upload) (*models.MenuItem, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if in.Name == nil {
		return nil, invalidInput("Name is required")
	}
	if in.Category == nil {
		return nil, invalidInput("Category is required")
	}
	if in.Price == nil || !in.Price.Present {
		return nil, invalidInput("Price is required")
	}

	item := &models.MenuItem{}
	if err := applyMenuInput(item, in); err != nil {
		return nil, err
	}

	var stored string
	if img != nil {
		key, err := s.storeImage(ctx, img)
		if err != nil {
			return nil, err
		}
		stored = key
		item.ImagePath = key
		item.ImageURL = s.disk.URL(key)
	}

	if err := s.menu.Create(ctx, item); err != nil {
		s.removeImage(ctx, stored)
		return nil, err
	}

	logger.WithCtx(ctx).Info("menu item created", "menu_item_id", item.ID, "by", actor.UserID)
	return item, nil
}

// Update applies a partial change. A replaced uploaded image is removed
// from storage once the row is saved.
func (s *MenuService) Update(ctx context.Context, actor auth.Identity, id uint, in MenuInput, img *Upload) (*models.MenuItem, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := item.ImagePath
	if err := applyMenuInput(item, in); err != nil {
		return nil, err
	}
	if in.ImageURL != nil {
		item.ImagePath = ""
	}

	var stored string
	if img != nil {
		key, err := s.storeImage(ctx, img)
		if err != nil {
			return nil, err
		}
		stored = key
		item.ImagePath = key
		item.ImageURL = s.disk.URL(key)
	}

	if err := s.menu.Save(ctx, item); err != nil {
		s.removeImage(ctx, stored)
		return nil, err
	}
	if previous != "" && previous != item.ImagePath {
		s.removeImage(ctx, previous)
	}

	logger.WithCtx(ctx).Info("menu item updated", "menu_item_id", item.ID, "by", actor.UserID)
	return item, nil
}

// Delete removes the item and its uploaded image. Past orders keep their
// snapshot lines.
func (s *MenuService) Delete(ctx context.Context, actor auth.Identity, id uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.menu.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("Menu item not found")
	}
	s.removeImage(ctx, item.ImagePath)

	logger.WithCtx(ctx).Info("menu item deleted", "menu_item_id", id, "by", actor.UserID)
	return nil
}

func applyMenuInput(item *models.MenuItem, in MenuInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return invalidInput("Name is required")
		}
		if len([]rune(name)) > 255 {
			return invalidInput("Name is too long")
		}
		item.Name = name
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		c, err := ParseCategory(*in.Category)
		if err != nil {
			return err
		}
		item.Category = c
	}
	if in.Price != nil && in.Price.Present {
		if !in.Price.OK {
			return invalidInput("Price must be a whole number")
		}
		if in.Price.Value < 0 {
			return invalidInput("Price cannot be negative")
		}
		if in.Price.Value > MaxPrice {
			return invalidInput("Price is too large")
		}
		item.Price = in.Price.Value
	}
	if in.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	return nil
}

// storeImage validates the upload by extension, size and sniffed content
// and writes it under menu/.
func (s *MenuService) storeImage(ctx context.Context, img *Upload) (string, error) {
	if s.disk == nil {
		return "", invalidInput("Image uploads are not enabled")
	}
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if !imageExtensions[ext] {
		return "", invalidInput("Image must be a .jpg, .jpeg, .png, .gif or .webp file")
	}
	if img.Size > config.MaxUploadBytes() {
		return "", invalidInput("Image is too large")
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(img.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	head = head[:n]
	if n == 0 {
		return "", invalidInput("Image is empty")
	}
	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		return "", invalidInput("File is not an image")
	}

	contentType := img.ContentType
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(head)
	}

	key := storage.NewKey("menu", ext)
	body := io.MultiReader(bytes.NewReader(head), img.Body)
	if err := s.disk.Put(ctx, key, body, contentType); err != nil {
		return "", err
	}
	return key, nil
}

func (s *MenuService) removeImage(ctx context.Context, key string) {
	if key == "" || s.disk == nil {
		return
	}
	if err := s.disk.Delete(ctx, key); err != nil {
		logger.WithCtx(ctx).Warn("menu: remove image failed", "key", key, "error", err)
	}
}

func requireAdmin(actor auth.Identity) error {
	if actor.UserID == 0 {
		return unauthenticated()
	}
	if !actor.IsAdmin() {
		return forbidden("Admin access required")
	}
	return nil
}
