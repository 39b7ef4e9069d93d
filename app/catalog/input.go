package catalog

import (
	"strings"

	"github.com/agencia1/merch-catalog/app/api"
	"github.com/agencia1/merch-catalog/models"
)

type createInput struct {
	Name                 string     `json:"name"`
	Code                 string     `json:"code"`
	CategoryID           string     `json:"categoryId"`
	Description          *string    `json:"description"`
	Price                api.Number `json:"price"`
	Image                *string    `json:"image"`
	Images               []string   `json:"images"`
	Featured             bool       `json:"featured"`
	MinQuantity          api.Number `json:"minQuantity"`
	MaxQuantity          api.Number `json:"maxQuantity"`
	Materials            []string   `json:"materials"`
	Colors               []string   `json:"colors"`
	Sizes                []string   `json:"sizes"`
	CustomizationInfo    *string    `json:"customizationInfo"`
	PrintingTechniqueIDs []string   `json:"printingTechniqueIds"`
}

func (in createInput) valid() bool {
	return strings.TrimSpace(in.Name) != "" &&
		strings.TrimSpace(in.Code) != "" &&
		strings.TrimSpace(in.CategoryID) != ""
}

func (in createInput) product() *models.Product {
	return &models.Product{
		Name:              strings.TrimSpace(in.Name),
		Code:              strings.TrimSpace(in.Code),
		CategoryID:        strings.TrimSpace(in.CategoryID),
		Description:       in.Description,
		Price:             in.Price.Decimal(),
		Image:             in.Image,
		Images:            models.OrEmpty(in.Images),
		Featured:          in.Featured,
		MinQuantity:       in.MinQuantity.Int(),
		MaxQuantity:       in.MaxQuantity.Int(),
		Materials:         models.OrEmpty(in.Materials),
		Colors:            models.OrEmpty(in.Colors),
		Sizes:             models.OrEmpty(in.Sizes),
		CustomizationInfo: in.CustomizationInfo,
	}
}

// updateInput mirrors createInput with every field optional.
type updateInput struct {
	Name                 models.Optional[string]     `json:"name"`
	Code                 models.Optional[string]     `json:"code"`
	CategoryID           models.Optional[string]     `json:"categoryId"`
	Description          models.Optional[*string]    `json:"description"`
	Price                models.Optional[api.Number] `json:"price"`
	Image                models.Optional[*string]    `json:"image"`
	Images               models.Optional[[]string]   `json:"images"`
	Featured             models.Optional[*bool]      `json:"featured"`
	MinQuantity          models.Optional[api.Number] `json:"minQuantity"`
	MaxQuantity          models.Optional[api.Number] `json:"maxQuantity"`
	Materials            models.Optional[[]string]   `json:"materials"`
	Colors               models.Optional[[]string]   `json:"colors"`
	Sizes                models.Optional[[]string]   `json:"sizes"`
	CustomizationInfo    models.Optional[*string]    `json:"customizationInfo"`
	PrintingTechniqueIDs models.Optional[[]string]   `json:"printingTechniqueIds"`
}

// blankRequired reports a required field that was supplied empty.
func (in updateInput) blankRequired() bool {
	for _, f := range []models.Optional[string]{in.Name, in.Code, in.CategoryID} {
		if f.Set && strings.TrimSpace(f.Value) == "" {
			return true
		}
	}
	return false
}

func (in updateInput) update() models.ProductUpdate {
	u := models.ProductUpdate{
		Description:       in.Description,
		Image:             in.Image,
		CustomizationInfo: in.CustomizationInfo,
	}
	if in.Name.Set {
		u.Name = models.Some(strings.TrimSpace(in.Name.Value))
	}
	if in.Code.Set {
		u.Code = models.Some(strings.TrimSpace(in.Code.Value))
	}
	if in.CategoryID.Set {
		u.CategoryID = models.Some(strings.TrimSpace(in.CategoryID.Value))
	}
	if in.Price.Set {
		u.Price = models.Some(in.Price.Value.Decimal())
	}
	if in.MinQuantity.Set {
		u.MinQuantity = models.Some(in.MinQuantity.Value.Int())
	}
	if in.MaxQuantity.Set {
		u.MaxQuantity = models.Some(in.MaxQuantity.Value.Int())
	}
	// null featured is treated as false, the column is not nullable
	if in.Featured.Set {
		u.Featured = models.Some(in.Featured.Value != nil && *in.Featured.Value)
	}
	for _, list := range []struct {
		in  models.Optional[[]string]
		out *models.Optional[[]string]
	}{
		{in.Images, &u.Images},
		{in.Materials, &u.Materials},
		{in.Colors, &u.Colors},
		{in.Sizes, &u.Sizes},
		{in.PrintingTechniqueIDs, &u.PrintingTechniqueIDs},
	} {
		if list.in.Set {
			*list.out = models.Some(models.OrEmpty(list.in.Value))
		}
	}
	return u
}
