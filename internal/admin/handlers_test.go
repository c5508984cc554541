package admin

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"tokenlaunch-backend/internal/middleware"
	"tokenlaunch-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAdminTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.ICOProject{}, &models.NFT{}, &models.Airdrop{}, &models.DexToken{},
	))

	h := &Handlers{Service: &Service{DB: db}}
	app := fiber.New()
	grp := app.Group("/admin", middleware.RequireAdminKey("test-key"))
	grp.Patch("/:kind/:id/approve", h.Approve)
	grp.Patch("/:kind/:id/reject", h.Reject)
	return app, db
}

func patchJSON(t *testing.T, app *fiber.App, url, key string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("PATCH", url, nil)
	if key != "" {
		req.Header.Set("X-Admin-Key", key)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestApprove_FlipsFlag(t *testing.T) {
	app, db := setupAdminTest(t)
	project := &models.ICOProject{Name: "Pending", Symbol: "PND", Network: "ethereum", IsActive: true}
	require.NoError(t, db.Create(project).Error)

	code, _ := patchJSON(t, app, "/admin/icos/"+project.ID.String()+"/approve", "test-key")
	assert.Equal(t, 200, code)

	var stored models.ICOProject
	require.NoError(t, db.First(&stored, "id = ?", project.ID).Error)
	assert.True(t, stored.IsApproved)
}

func TestReject_Deactivates(t *testing.T) {
	app, db := setupAdminTest(t)
	token := &models.DexToken{Name: "Spam", Symbol: "SPM", ContractAddress: "0x1", Network: "bsc", IsActive: true, IsApproved: true}
	require.NoError(t, db.Create(token).Error)

	code, _ := patchJSON(t, app, "/admin/dex-tokens/"+token.ID.String()+"/reject", "test-key")
	assert.Equal(t, 200, code)

	var stored models.DexToken
	require.NoError(t, db.First(&stored, "id = ?", token.ID).Error)
	assert.False(t, stored.IsApproved)
	assert.False(t, stored.IsActive)
}

func TestModerate_UnknownKind(t *testing.T) {
	app, _ := setupAdminTest(t)
	code, out := patchJSON(t, app, "/admin/widgets/00000000-0000-0000-0000-000000000001/approve", "test-key")
	assert.Equal(t, 400, code)
	assert.Equal(t, "Unknown listing kind", out["error"].(map[string]interface{})["message"])
}

func TestModerate_NotFound(t *testing.T) {
	app, _ := setupAdminTest(t)
	code, _ := patchJSON(t, app, "/admin/nfts/00000000-0000-0000-0000-000000000001/approve", "test-key")
	assert.Equal(t, 404, code)
}

func TestModerate_RequiresKey(t *testing.T) {
	app, _ := setupAdminTest(t)
	code, _ := patchJSON(t, app, "/admin/icos/00000000-0000-0000-0000-000000000001/approve", "")
	assert.Equal(t, 401, code)
}
