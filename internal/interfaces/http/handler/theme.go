package handler

import (
	"github.com/gin-gonic/gin"
)

// Theme is a named color palette the front end applies via CSS variables
type Theme struct {
	Name       string            `json:"name"`
	Label      string            `json:"label"`
	Dark       bool              `json:"dark"`
	CSSColours map[string]string `json:"colours"`
}

// themes is the static palette catalogue. Keys in CSSColours map
// directly onto CSS custom property names minus the leading "--".
var themes = []Theme{
	{
		Name:  "classic",
		Label: "Classic",
		CSSColours: map[string]string{
			"primary":    "#1a56db",
			"secondary":  "#64748b",
			"background": "#f8fafc",
			"surface":    "#ffffff",
			"text":       "#0f172a",
			"accent":     "#0e9f6e",
			"danger":     "#dc2626",
		},
	},
	{
		Name:  "midnight",
		Label: "Midnight",
		Dark:  true,
		CSSColours: map[string]string{
			"primary":    "#60a5fa",
			"secondary":  "#94a3b8",
			"background": "#0f172a",
			"surface":    "#1e293b",
			"text":       "#f1f5f9",
			"accent":     "#34d399",
			"danger":     "#f87171",
		},
	},
	{
		Name:  "savanna",
		Label: "Savanna",
		CSSColours: map[string]string{
			"primary":    "#b45309",
			"secondary":  "#78716c",
			"background": "#fafaf9",
			"surface":    "#ffffff",
			"text":       "#1c1917",
			"accent":     "#4d7c0f",
			"danger":     "#b91c1c",
		},
	},
	{
		Name:  "contrast",
		Label: "High contrast",
		Dark:  true,
		CSSColours: map[string]string{
			"primary":    "#ffd600",
			"secondary":  "#ffffff",
			"background": "#000000",
			"surface":    "#121212",
			"text":       "#ffffff",
			"accent":     "#00e676",
			"danger":     "#ff5252",
		},
	},
}

// ThemeHandler serves the static theme catalogue
type ThemeHandler struct {
	BaseHandler
}

// NewThemeHandler creates a new ThemeHandler
func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// RegisterRoutes registers theme routes
func (h *ThemeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/themes", h.List)
}

// List returns all available themes
func (h *ThemeHandler) List(c *gin.Context) {
	h.Success(c, themes)
}
