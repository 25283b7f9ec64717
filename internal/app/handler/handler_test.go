package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/handler"
	"fleet_registry/internal/app/handler/middleware"
	"fleet_registry/internal/app/repository"
	"fleet_registry/internal/app/repository/repotest"
	"fleet_registry/internal/app/storage/storagetest"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	router *gin.Engine
	rep    *repository.Repository
	blobs  *storagetest.Memory
}

func setup(t *testing.T, authEnabled bool) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rep, blobs := repotest.New(t)
	router := gin.New()
	router.Use(middleware.RequestLogger())
	handler.NewHandler(rep, handler.Options{
		AuthEnabled: authEnabled,
		Clock:       func() time.Time { return now },
	}).SetupRoutes(router)
	return fixture{router: router, rep: rep, blobs: blobs}
}

func (f fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f fixture) vessel(t *testing.T, name, registration string) ds.Vessel {
	t.Helper()
	v := ds.Vessel{Name: name, Registration: registration}
	require.NoError(t, f.rep.CreateVessel(context.Background(), &v, nil))
	return v
}

func jsonRequest(method, path string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type part struct {
	field, filename, content string
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, files ...part) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, p := range files {
		fw, err := mw.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(p.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestCreateImageMetadataWithoutFile(t *testing.T) {
	f := setup(t, false)
	v := f.vessel(t, "Aurora", "AU-1")

	w := f.do(multipartRequest(t, http.MethodPost, "/api/metadata", map[string]string{
		"vessel_id": "1", "kind": "IMAGE", "name": "Hull",
	}))
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, ds.HintFileKind, decode(t, w)["detail"])

	fields, err := f.rep.ListMetaFields(context.Background(), &v.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestCreateImageMetadataWithFile(t *testing.T) {
	f := setup(t, false)
	f.vessel(t, "Aurora", "AU-1")

	w := f.do(multipartRequest(t, http.MethodPost, "/api/metadata",
		map[string]string{"vessel_id": "1", "kind": "image", "name": "Hull"},
		part{field: "value", filename: "hull.png", content: "png-bytes"}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "IMAGE", data["kind"])
	assert.Equal(t, true, data["has_file"])
	assert.True(t, strings.HasPrefix(data["value"].(string), "http://blobs.test/fleet/vessels/1/metadata/"), data["value"])
	assert.Len(t, f.blobs.Refs(), 1)
}

func TestCreateTextMetadataJSON(t *testing.T) {
	f := setup(t, false)
	f.vessel(t, "Aurora", "AU-1")

	w := f.do(jsonRequest(http.MethodPost, "/api/metadata", map[string]any{
		"vessel_id": 1, "kind": "boolean", "name": "Heated", "value": "yes",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "BOOLEAN", data["kind"])
	assert.Equal(t, "yes", data["value"])

	w = f.do(jsonRequest(http.MethodPost, "/api/metadata", map[string]any{
		"vessel_id": 1, "kind": "TEXT", "name": "Heated", "value": "no",
	}))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(jsonRequest(http.MethodPost, "/api/metadata", map[string]any{
		"vessel_id": 1, "kind": "COLOR", "name": "Paint",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMetadataScalarJSON(t *testing.T) {
	f := setup(t, false)
	f.vessel(t, "Aurora", "AU-1")

	cases := []struct {
		name  string
		kind  string
		value any
		want  any
	}{
		{"Length", "NUMBER", 42, "42"},
		{"Draft", "NUMBER", 3.5, "3.5"},
		{"Heated", "BOOLEAN", true, "true"},
		{"Lifeboat", "BOOLEAN", false, "false"},
		{"Notes", "TEXT", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(jsonRequest(http.MethodPost, "/api/metadata", map[string]any{
				"vessel_id": 1, "kind": tc.kind, "name": tc.name, "value": tc.value,
			}))
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			assert.Equal(t, tc.want, decode(t, w)["data"].(map[string]any)["value"])
		})
	}

	w := f.do(jsonRequest(http.MethodPost, "/api/metadata", map[string]any{
		"vessel_id": 1, "kind": "TEXT", "name": "Tags", "value": []string{"a"},
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestAlertSummaryShape(t *testing.T) {
	f := setup(t, false)
	v := f.vessel(t, "Aurora", "AU-1")
	exp := ds.NewDate(2026, time.March, 1)
	require.NoError(t, f.rep.SaveDocument(context.Background(), &ds.Document{
		VesselID: v.ID, DocType: "Permit", IssueDate: ds.NewDate(2020, 1, 1), ExpirationDate: &exp,
	}))

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/alerts/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	for _, key := range []string{
		"documentsExpires", "documentsBientotExpires", "total_alertes", "total_valide",
		"liste_expires", "naviresRecents", "documentsPresqueExpires",
	} {
		assert.Contains(t, body, key)
	}
	assert.Equal(t, float64(1), body["documentsExpires"])
	expired := body["liste_expires"].([]any)
	require.Len(t, expired, 1)
	item := expired[0].(map[string]any)
	assert.Equal(t, "Aurora", item["navire_nom"])
	assert.Equal(t, "expired", item["type_alerte"])
	assert.Equal(t, []any{}, body["documentsPresqueExpires"])
}

func TestErrorStatuses(t *testing.T) {
	f := setup(t, false)
	f.vessel(t, "Aurora", "AU-1")

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/vessels/99", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(httptest.NewRequest(http.MethodGet, "/api/vessels/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(jsonRequest(http.MethodPost, "/api/vessels", map[string]any{"name": "Twin", "registration": "AU-1"}))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(jsonRequest(http.MethodPost, "/api/vessels", map[string]any{"registration": "NO-NAME"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(httptest.NewRequest(http.MethodDelete, "/api/metadata/12", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInsurancePeriodValidation(t *testing.T) {
	f := setup(t, false)
	v := f.vessel(t, "Aurora", "AU-1")
	insurer := ds.Insurer{Name: "Mutuelle"}
	require.NoError(t, f.rep.CreateInsurer(context.Background(), &insurer))

	w := f.do(jsonRequest(http.MethodPost, "/api/insurances", map[string]any{
		"vessel_id": v.ID, "insurer_id": insurer.ID, "start_date": "2026-06-01", "end_date": "2026-01-01",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = f.do(jsonRequest(http.MethodPost, "/api/insurances", map[string]any{
		"vessel_id": v.ID, "insurer_id": insurer.ID, "start_date": "2026-01-01", "end_date": "2026-04-01",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "Mutuelle", data["insurer_name"])
	assert.Equal(t, ds.StatusSoon.Label(), data["status"])

	w = f.do(httptest.NewRequest(http.MethodGet, "/api/insurances/expiring-soon", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Aurora")
}

func TestExportCSV(t *testing.T) {
	f := setup(t, false)
	v := f.vessel(t, "Aurora", "AU-1")
	_, err := f.rep.CreateMetaField(context.Background(), v.ID, ds.KindText, "Color", ds.TextValue("red"))
	require.NoError(t, err)

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/vessels/export-csv", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="vessels_complete_2026-03-10_09-00.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\xEF\xBB\xBF"))
	assert.Contains(t, w.Body.String(), ";Color")

	w = f.do(httptest.NewRequest(http.MethodGet, "/api/vessels/export-csv-filtered?search=nothing-matches", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vessels_filtered_")
	assert.NotContains(t, w.Body.String(), "Aurora")
}

func TestExportOnePDF(t *testing.T) {
	f := setup(t, false)
	v := f.vessel(t, "Grand Bleu", "GB-1")

	w := f.do(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/vessels/%d/export-one-pdf", v.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="vessel_sheet_Grand_Bleu_2026-03-10.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestUploadPhotoRequiresFile(t *testing.T) {
	f := setup(t, false)
	f.vessel(t, "Aurora", "AU-1")

	w := f.do(multipartRequest(t, http.MethodPost, "/api/vessels/1/photo", map[string]string{"note": "none"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(multipartRequest(t, http.MethodPost, "/api/vessels/1/photo", nil, part{field: "image", filename: "a.jpg", content: "jpeg"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.True(t, strings.HasPrefix(data["photo_url"].(string), "http://blobs.test/fleet/vessels/photos/"))
}

func TestCreateVesselWithPhoto(t *testing.T) {
	f := setup(t, false)

	w := f.do(multipartRequest(t, http.MethodPost, "/api/vessels",
		map[string]string{"name": "Aurora", "registration": "AU-1"},
		part{field: "photo", filename: "aurora.jpg", content: "jpeg"}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.True(t, strings.HasPrefix(data["photo_url"].(string), "http://blobs.test/fleet/vessels/photos/"))

	f.blobs.FailPut = true
	w = f.do(multipartRequest(t, http.MethodPost, "/api/vessels",
		map[string]string{"name": "Boreal", "registration": "BO-1"},
		part{field: "photo", filename: "boreal.jpg", content: "jpeg"}))
	assert.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())

	vessels, err := f.rep.ListVessels(context.Background(), repository.VesselFilter{})
	require.NoError(t, err)
	require.Len(t, vessels, 1)
	assert.Equal(t, "Aurora", vessels[0].Name)
}

func TestWriteGuard(t *testing.T) {
	f := setup(t, true)

	w := f.do(httptest.NewRequest(http.MethodGet, "/api/owners", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(jsonRequest(http.MethodPost, "/api/owners", map[string]any{"name": "Jo Martin"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(jsonRequest(http.MethodPost, "/api/users/register", map[string]any{"login": "harbor", "password": "s3cret!"}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.do(jsonRequest(http.MethodPost, "/api/users/login", map[string]any{"login": "harbor", "password": "bad-one"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(jsonRequest(http.MethodPost, "/api/users/login", map[string]any{"login": "harbor", "password": "s3cret!"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode(t, w)["data"].(map[string]any)["token"].(string)

	req := jsonRequest(http.MethodPost, "/api/owners", map[string]any{"name": "Jo Martin"})
	req.Header.Set("Authorization", "Bearer "+token)
	w = f.do(req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "harbor", decode(t, w)["data"].(map[string]any)["login"])
}

func TestMethodOverride(t *testing.T) {
	f := setup(t, false)
	f.vessel(t, "Aurora", "AU-1")

	w := httptest.NewRecorder()
	middleware.MethodOverride(f.router).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/vessels/1?_method=DELETE", nil))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	_, err := f.rep.GetVessel(context.Background(), 1)
	assert.ErrorIs(t, err, ds.ErrNotFound)
}

func TestHealth(t *testing.T) {
	f := setup(t, false)
	w := f.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
