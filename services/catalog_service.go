package services

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"gorm.io/gorm"
)

// MenuItemInput carries the fields a client may set on a menu item. Nil
// means "not supplied".
type MenuItemInput struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Image           *string          `json:"image"`
	Category        *string          `json:"category"`
	IsVegetarian    *bool            `json:"isVegetarian"`
	SpicyLevel      *int             `json:"spicyLevel"`
	PreparationTime *int             `json:"preparationTime"`
	Available       *bool            `json:"available"`
}

// missing lists the create-time required fields that were not supplied.
func (in *MenuItemInput) missing() []string {
	var out []string
	if in.Name == nil {
		out = append(out, "name")
	}
	if in.Price == nil {
		out = append(out, "price")
	}
	if in.Description == nil {
		out = append(out, "description")
	}
	if in.Image == nil {
		out = append(out, "image")
	}
	if in.Category == nil {
		out = append(out, "category")
	}
	if in.PreparationTime == nil {
		out = append(out, "preparationTime")
	}
	return out
}

func (in *MenuItemInput) applyTo(item *models.MenuItem) {
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Image != nil {
		item.Image = strings.TrimSpace(*in.Image)
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.IsVegetarian != nil {
		item.IsVegetarian = *in.IsVegetarian
	}
	if in.SpicyLevel != nil {
		item.SpicyLevel = *in.SpicyLevel
	}
	if in.PreparationTime != nil {
		item.PreparationTime = *in.PreparationTime
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
}

type CatalogService struct {
	Menus    *repository.MenuRepository
	validate *validator.Validate
}

func NewCatalogService(menus *repository.MenuRepository) *CatalogService {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &CatalogService{Menus: menus, validate: v}
}

func (s *CatalogService) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.Menus.ListAvailable(ctx)
	return items, storageErr("list available menu items", err)
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.Menus.ListAll(ctx)
	return items, storageErr("list menu items", err)
}

func (s *CatalogService) Get(ctx context.Context, rawID string) (*models.MenuItem, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	if missing := in.missing(); len(missing) > 0 {
		return nil, validationErr("missing required fields: %s", strings.Join(missing, ", "))
	}

	item := &models.MenuItem{SpicyLevel: 1, Available: true}
	in.applyTo(item)
	if err := s.validateItem(item); err != nil {
		return nil, err
	}
	if err := s.Menus.Create(ctx, item); err != nil {
		return nil, storageErr("create menu item", err)
	}
	return item, nil
}

// Update merges the supplied fields into the stored item and re-validates the
// result as a whole.
func (s *CatalogService) Update(ctx context.Context, rawID string, in MenuItemInput) (*models.MenuItem, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	in.applyTo(item)
	if err := s.validateItem(item); err != nil {
		return nil, err
	}
	if err := s.Menus.Save(ctx, item); err != nil {
		return nil, storageErr("update menu item", err)
	}
	return item, nil
}

// Delete removes the item and returns it. Carts referencing it keep their
// lines, which then price at zero.
func (s *CatalogService) Delete(ctx context.Context, rawID string) (*models.MenuItem, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Menus.Delete(ctx, id); err != nil {
		return nil, storageErr("delete menu item", err)
	}
	return item, nil
}

func (s *CatalogService) find(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.Menus.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find menu item", err)
	}
	return item, nil
}

func (s *CatalogService) validateItem(item *models.MenuItem) error {
	if !item.Price.IsPositive() {
		return validationErr("price must be greater than 0")
	}
	if !item.Price.Equal(item.Price.Round(2)) {
		return validationErr("price must have at most 2 decimal places")
	}
	if err := s.validate.Struct(item); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return validationErr("%v", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return validationErr("%s", strings.Join(msgs, "; "))
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	}
	return fe.Field() + " is invalid"
}

// ParseID parses a positive decimal identifier.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}
