package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/youruser/rankcard/internal/assets"
	"github.com/youruser/rankcard/internal/members"
	"github.com/youruser/rankcard/internal/rankcard"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// testRouter wires a full server against temp data, a temp background file
// and an httptest avatar host.
func testRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	avatarHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(encodePNG(t, 128, 128, color.NRGBA{200, 40, 40, 255}))
	}))
	t.Cleanup(avatarHost.Close)

	dataDir := t.TempDir()
	if err := members.SaveMembers(dataDir, []members.Member{
		{ID: "42", Username: "alice", Level: 5, CurrentXP: 250, MaxXP: 1000, AvatarURL: avatarHost.URL + "/a.png"},
	}); err != nil {
		t.Fatal(err)
	}

	bgPath := filepath.Join(dataDir, "background.png")
	if err := os.WriteFile(bgPath, encodePNG(t, 640, 160, color.NRGBA{20, 20, 160, 255}), 0o644); err != nil {
		t.Fatal(err)
	}

	loader, err := assets.NewBuiltin()
	if err != nil {
		t.Fatal(err)
	}
	renderer := rankcard.NewRenderer(loader)
	renderer.Compositor.Log = log.New(io.Discard, "", 0)

	srv := &Server{
		Renderer: renderer,
		Settings: rankcard.Settings{
			Background: rankcard.FileSource(bgPath),
			BarColor:   "white",
			TextColor:  "white",
		},
		DataDir:        dataDir,
		ProfileBaseURL: "http://localhost:8080/members",
	}
	r := gin.New()
	srv.RegisterRoutes(r)
	return r, avatarHost.URL
}

func doRequest(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := testRouter(t)
	w := doRequest(r, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
}

func TestRankcardEndpoint(t *testing.T) {
	r, avatarURL := testRouter(t)
	body, _ := json.Marshal(map[string]any{
		"avatar":     avatarURL + "/a.png",
		"username":   "alice",
		"level":      5,
		"current_xp": 250,
		"max_xp":     1000,
	})
	w := doRequest(r, http.MethodPost, "/api/rankcard", bytes.NewReader(body))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("response not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 505 || img.Bounds().Dy() != 259 {
		t.Errorf("card bounds = %v, want 505x259", img.Bounds())
	}
}

func TestRankcardEndpointRejectsInvalidSpec(t *testing.T) {
	r, avatarURL := testRouter(t)

	// missing avatar is a distinguished bad-input failure
	body, _ := json.Marshal(map[string]any{"username": "x", "max_xp": 100})
	if w := doRequest(r, http.MethodPost, "/api/rankcard", bytes.NewReader(body)); w.Code != http.StatusBadRequest {
		t.Errorf("missing avatar status = %d, want 400", w.Code)
	}

	// malformed JSON
	if w := doRequest(r, http.MethodPost, "/api/rankcard", strings.NewReader("{")); w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", w.Code)
	}

	// zero max xp fails validation before any I/O
	body, _ = json.Marshal(map[string]any{"avatar": avatarURL + "/a.png", "username": "x", "max_xp": 0})
	if w := doRequest(r, http.MethodPost, "/api/rankcard", bytes.NewReader(body)); w.Code != http.StatusInternalServerError {
		t.Errorf("zero max xp status = %d, want 500", w.Code)
	}
}

func TestMembersAndLeaderboard(t *testing.T) {
	r, _ := testRouter(t)

	w := doRequest(r, http.MethodGet, "/api/members?q=ali", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("members status = %d", w.Code)
	}
	var resp struct {
		Count   int              `json:"count"`
		Members []members.Member `json:"members"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Members[0].ID != "42" {
		t.Errorf("unexpected members response: %+v", resp)
	}

	w = doRequest(r, http.MethodGet, "/api/leaderboard?format=text", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "#1 alice") {
		t.Errorf("leaderboard text = %q", w.Body.String())
	}
}

func TestMemberCardEndpoint(t *testing.T) {
	r, _ := testRouter(t)
	w := doRequest(r, http.MethodGet, "/api/members/42/card", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if _, err := png.Decode(bytes.NewReader(w.Body.Bytes())); err != nil {
		t.Fatalf("member card not a PNG: %v", err)
	}

	if w := doRequest(r, http.MethodGet, "/api/members/404/card", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown member status = %d, want 404", w.Code)
	}
}

func TestMemberQREndpoint(t *testing.T) {
	r, _ := testRouter(t)
	w := doRequest(r, http.MethodGet, "/api/members/42/qr?size=200", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("qr status = %d", w.Code)
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("qr not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("qr width = %d, want 200", img.Bounds().Dx())
	}
}
