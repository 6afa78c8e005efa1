package web

import (
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"DataLens/internal/dashboard"
	"DataLens/internal/model"
	"DataLens/internal/store"

	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var indexHTML string

// Handler serves the dashboard page, uploads and chart downloads.
type Handler struct {
	Renderer *dashboard.Renderer
	Uploads  store.Store
	MaxBytes int64
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := template.New("index").Funcs(template.FuncMap{
		"pngSrc":   pngSrc,
		"percent":  func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
		"price":    func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"selected": func(a, b any) bool { return fmt.Sprint(a) == fmt.Sprint(b) },
		"columnLabel": func(name string) string {
			if name == model.NoColumn {
				return model.NoColumnLabel
			}
			return name
		},
		"downloadURL": func(in dashboard.Inputs) template.URL {
			return template.URL("/download?" + inputsQuery(in))
		},
	}).Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.Use(cors())

	r.GET("/", h.Index)
	r.POST("/upload", h.Upload)
	r.GET("/download", h.Download)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r, nil
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func pngSrc(data []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
}

// inputsQuery encodes the controls so a link reproduces the same render pass.
func inputsQuery(in dashboard.Inputs) string {
	v := url.Values{}
	v.Set("section", string(in.Section))
	if in.Section.IsTable() {
		if in.UploadID != "" {
			v.Set("upload", in.UploadID)
		}
		v.Set("x", in.X)
		v.Set("y", in.Y)
	} else {
		v.Set("period", string(in.Period))
	}
	return v.Encode()
}

func inputsFromRequest(c *gin.Context) dashboard.Inputs {
	period, err := model.ParsePeriod(c.Query("period"))
	if err != nil {
		period = model.Period1Month
	}
	return dashboard.Inputs{
		Section:  model.ParseSection(c.Query("section")),
		Period:   period,
		UploadID: c.Query("upload"),
		X:        c.Query("x"),
		Y:        c.Query("y"),
	}
}
