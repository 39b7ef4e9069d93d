package web

import (
	"strings"

	"github.com/agencia1/merch-catalog/models"
)

// TechniqueDetail is the editorial copy shown on the techniques page.
type TechniqueDetail struct {
	Name         string
	Description  string
	Icon         string
	Features     []string
	Applications []string
	Advantages   []string
	BestFor      []string
}

var techniqueDetails = []TechniqueDetail{
	{
		Name:         "Serigrafía",
		Description:  "Impresión duradera y vibrante. Ideal para grandes cantidades de monocromo, resistente al lavado y de uso prolongado.",
		Icon:         "🎨",
		Features:     []string{"Alta durabilidad", "Colores vibrantes", "Económica por cantidad", "Versátil"},
		Applications: []string{"Camisetas", "Gorras", "Bolsas", "Artículos promocionales"},
		Advantages:   []string{"Resistente al lavado", "Colores intensos", "Ideal para grandes volúmenes", "Acabado profesional"},
		BestFor:      []string{"Pedidos de 50+ unidades", "Diseños de 1-4 colores", "Productos textiles", "Artículos promocionales"},
	},
	{
		Name:         "Sublimación",
		Description:  "Calidad fotográfica perfecta. Los colores se integran directamente en las fibras, ideal para diseños complejos y fotografías.",
		Icon:         "🌈",
		Features:     []string{"Calidad fotográfica", "A prueba de agua", "Sin relieve al tacto", "A todo color"},
		Applications: []string{"Ropa sintética", "Tazas", "Gorras", "Artículos promocionales"},
		Advantages:   []string{"Colores vivos", "Duradero", "Sin sensación al tacto", "Perfecto para fotos"},
		BestFor:      []string{"Ropa deportiva", "Productos de poliéster", "Diseños complejos", "Fotografías a todo color"},
	},
	{
		Name:         "Impresión Digital",
		Description:  "Rapidez y flexibilidad. Perfecta para pedidos pequeños y prototipos, permite cambios rápidos y personalización.",
		Icon:         "🖨️",
		Features:     []string{"Sin mínimo de cantidad", "Alta resolución", "Entrega rápida", "Personalización"},
		Applications: []string{"Pedidos pequeños", "Prototipos", "Artículos personalizados", "Eventos urgentes"},
		Advantages:   []string{"Producción bajo demanda", "Calidad superior", "Flexibilidad", "Entrega inmediata"},
		BestFor:      []string{"Diseños complejos", "Fotografías", "Pedidos urgentes", "Prototipos", "Eventos"},
	},
	{
		Name:         "Transferencia Térmica",
		Description:  "Versatilidad y precisión. Mediante calor se pueden lograr diseños complejos, ideal para detalles finos y multicolores.",
		Icon:         "🔥",
		Features:     []string{"Alta precisión", "Buen detalle", "Múltiples colores", "Versátil"},
		Applications: []string{"Uniformes", "Mochilas", "Textiles", "Artículos promocionales"},
		Advantages:   []string{"Detalles nítidos", "Colores vivos", "Ideal para diseños complejos", "Aplicación versátil"},
		BestFor:      []string{"Uniformes deportivos", "Mochilas", "Textiles variados", "Diseños multicolores", "Artículos promocionales"},
	},
	{
		Name:         "Grabado Láser",
		Description:  "Elegancia y precisión. Permanente y de alta precisión, ideal para materiales duros como metal, cristal y madera.",
		Icon:         "⚡",
		Features:     []string{"Permanente", "Premium", "Alta precisión", "Duradero"},
		Applications: []string{"Plumas", "Artículos metálicos", "Cristal", "Madera", "Regalos corporativos"},
		Advantages:   []string{"Acabado elegante", "Extremadamente duradero", "Personalización detallada", "Apto para regalos de lujo"},
		BestFor:      []string{"Artículos de lujo", "Regalos corporativos", "Productos metálicos", "Cristalería", "Artículos de madera"},
	},
	{
		Name:         "Bordado",
		Description:  "Textura y calidad premium. Costura de alta calidad que proporciona textura y presencia, transmitiendo elegancia y profesionalismo.",
		Icon:         "🧵",
		Features:     []string{"Textura premium", "Duradero", "Alta percepción", "Profesional"},
		Applications: []string{"Gorras", "Chamarras", "Polos", "Ropa corporativa", "Toallas"},
		Advantages:   []string{"Apariencia de lujo", "Extremadamente resistente", "Alta percepción de calidad", "Acabado profesional"},
		BestFor:      []string{"Ropa corporativa", "Uniformes de alta gama", "Gorras", "Polos", "Regalos ejecutivos"},
	},
}

// mergeTechniques pairs stored techniques with their editorial details.
// The stored name and icon win, the stored description is used only when
// there is no editorial copy. With nothing stored the editorial list is
// shown as is.
func mergeTechniques(stored []models.PrintingTechnique) []TechniqueDetail {
	if len(stored) == 0 {
		return techniqueDetails
	}

	byName := make(map[string]TechniqueDetail, len(techniqueDetails))
	for _, d := range techniqueDetails {
		byName[strings.ToLower(d.Name)] = d
	}

	merged := make([]TechniqueDetail, 0, len(stored))
	for _, t := range stored {
		detail := byName[strings.ToLower(strings.TrimSpace(t.Name))]
		detail.Name = t.Name
		if t.Description != nil && *t.Description != "" && detail.Description == "" {
			detail.Description = *t.Description
		}
		if t.Icon != nil && *t.Icon != "" {
			detail.Icon = *t.Icon
		}
		merged = append(merged, detail)
	}
	return merged
}
