package api

import (
	"errors"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/handler/middleware"
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// Clock returns the current time; tests pin it.
type Clock func() time.Time

func (c Clock) today() time.Time {
	if c == nil {
		return ds.Day(time.Now())
	}
	return ds.Day(c())
}

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// respondError maps the ds error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ds.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ds.ErrDuplicateKey):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ds.ErrInvalidPayload):
		detail := ds.Hint(err)
		if detail == "" {
			detail = err.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "detail": detail})
	case errors.Is(err, ds.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		middleware.Logger(c).Error(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// bindError renders binding failures, one message per invalid field.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID", "detail": c.Param("id")})
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer filter.
func queryInt(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name, "detail": raw})
		return nil, false
	}
	return &v, true
}

// queryInts accepts both repeated and comma separated values.
func queryInts(c *gin.Context, name string) ([]int, error) {
	var out []int
	for _, raw := range queryStrings(c, name) {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", name, raw, ds.ErrInvalidPayload)
		}
		out = append(out, v)
	}
	return out, nil
}

func queryStrings(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formUpload opens the first file part named after one of names, falling
// back to any part whose name contains "file". The caller closes the file.
func formUpload(c *gin.Context, names ...string) (*ds.Upload, multipart.File, error) {
	if !isMultipart(c) {
		return nil, nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, fmt.Errorf("malformed multipart body: %v: %w", err, ds.ErrInvalidPayload)
	}
	var header *multipart.FileHeader
	for _, name := range names {
		if hs := form.File[name]; len(hs) > 0 {
			header = hs[0]
			break
		}
	}
	if header == nil {
		fields := make([]string, 0, len(form.File))
		for field := range form.File {
			if strings.Contains(strings.ToLower(field), "file") && len(form.File[field]) > 0 {
				fields = append(fields, field)
			}
		}
		if len(fields) == 0 {
			return nil, nil, nil
		}
		sort.Strings(fields)
		header = form.File[fields[0]][0]
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("unreadable file %s: %v: %w", header.Filename, err, ds.ErrInvalidPayload)
	}
	return &ds.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, file, nil
}

func parseDate(field, raw string) (datatypes.Date, error) {
	d, err := ds.ParseDate(raw)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("%s must be YYYY-MM-DD, got %q: %w", field, raw, ds.ErrInvalidPayload)
	}
	return d, nil
}
