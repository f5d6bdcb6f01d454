package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	inventoryapp "github.com/armoryhq/backend/internal/application/inventory"
	"github.com/armoryhq/backend/internal/domain/inventory"
	"github.com/armoryhq/backend/internal/infrastructure/persistence"
	"github.com/armoryhq/backend/internal/infrastructure/storage"
	"github.com/armoryhq/backend/internal/interfaces/http/router"
	"github.com/armoryhq/backend/internal/interfaces/http/view"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecurityCode = "0000"

type testServer struct {
	http.Handler
	db    *gorm.DB
	media *storage.StubMediaStore
}

// newTestServer wires the full page stack against an in-memory database
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE slots (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			quality TEXT NOT NULL,
			slot_id TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '#',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE sellers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE item_instances (
			id TEXT PRIMARY KEY,
			item_id TEXT NOT NULL,
			seller_id TEXT NOT NULL,
			stock_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}

	items := persistence.NewGormItemRepository(db)
	slots := persistence.NewGormSlotRepository(db)
	sellers := persistence.NewGormSellerRepository(db)
	instances := persistence.NewGormItemInstanceRepository(db)
	media := storage.NewStubMediaStore("")

	cfg := inventoryapp.WriterConfig{SecurityCode: testSecurityCode, MediaFolder: "armory/items"}
	reader := inventoryapp.NewItemReader(items, slots, instances)
	writer := inventoryapp.NewItemWriter(items, slots, instances, media, cfg)
	sellerSvc := inventoryapp.NewSellerService(sellers, instances, cfg)
	listingSvc := inventoryapp.NewListingService(instances, items, sellers)
	dashboard := inventoryapp.NewDashboardService(items, sellers, slots, instances, nil, nil)

	views, err := view.NewRenderer(nil)
	require.NoError(t, err)

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewDashboardHandler(views, dashboard)).
		Register(NewItemHandler(views, reader, writer)).
		Register(NewSellerHandler(views, sellerSvc)).
		Register(NewListingHandler(views, listingSvc)).
		Register(NewSlotHandler(views, slots)).
		Setup()

	return &testServer{Handler: engine, db: db, media: media}
}

func (s *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	s.ServeHTTP(w, req)
	return w
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.ServeHTTP(w, req)
	return w
}

func (s *testServer) postMultipart(t *testing.T, path string, fields map[string]string, fileName, fileType string, fileData []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		header.Set("Content-Type", fileType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	s.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedSlot(t *testing.T, name string) *inventory.Slot {
	t.Helper()
	slot, err := inventory.NewSlot(name)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(slot).Error)
	return slot
}

func (s *testServer) seedItem(t *testing.T, name string, slotID uuid.UUID) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(name, "A sturdy piece of gear", "Rare", slotID)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormItemRepository(s.db).Insert(context.Background(), item))
	return item
}

func (s *testServer) seedSeller(t *testing.T, name string) *inventory.Seller {
	t.Helper()
	seller, err := inventory.NewSeller(name)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormSellerRepository(s.db).Insert(context.Background(), seller))
	return seller
}

func (s *testServer) seedListing(t *testing.T, itemID, sellerID uuid.UUID, stock int) *inventory.ItemInstance {
	t.Helper()
	listing, err := inventory.NewItemInstance(itemID, sellerID, stock)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormItemInstanceRepository(s.db).Insert(context.Background(), listing))
	return listing
}

func TestDashboardShowsCounters(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Head")
	srv.seedItem(t, "Helm", slot.ID)

	w := srv.get(t, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dashboard")
}

func TestItemListAndDetail(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")
	item := srv.seedItem(t, "Longsword", slot.ID)

	w := srv.get(t, "/items")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Longsword")

	w = srv.get(t, "/items/"+item.ID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Longsword")
	assert.Contains(t, w.Body.String(), "Weapon")
}

func TestItemDetailUnknownIDRendersNotFound(t *testing.T) {
	srv := newTestServer(t)

	w := srv.get(t, "/items/"+uuid.New().String())
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.get(t, "/items/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemCreateWithoutFileRedirects(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")

	w := srv.postForm(t, "/items", url.Values{
		"name":        {"Longsword"},
		"description": {"A well balanced blade"},
		"quality":     {"Epic"},
		"slot":        {slot.ID.String()},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/items/"))

	id, err := uuid.Parse(strings.TrimPrefix(location, "/items/"))
	require.NoError(t, err)

	item, err := persistence.NewGormItemRepository(srv.db).FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, inventory.NoImage, item.ImageURL)
	assert.Equal(t, 0, srv.media.Len())
}

func TestItemCreateWithImageStoresAndLinks(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")

	w := srv.postMultipart(t, "/items", map[string]string{
		"name":        "Longsword",
		"description": "A well balanced blade",
		"quality":     "Epic",
		"slot":        slot.ID.String(),
	}, "sword.png", "image/png", []byte("png-bytes"))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 1, srv.media.Len())

	id, err := uuid.Parse(strings.TrimPrefix(w.Header().Get("Location"), "/items/"))
	require.NoError(t, err)
	item, err := persistence.NewGormItemRepository(srv.db).FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, item.HasImage())
	assert.Contains(t, item.ImageURL, "armory/items/")
}

func TestItemCreateValidationErrorsReRender(t *testing.T) {
	srv := newTestServer(t)
	srv.seedSlot(t, "Weapon")

	w := srv.postForm(t, "/items", url.Values{})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Name must not be empty.")
	assert.Contains(t, body, "Description must not be empty.")
	assert.Contains(t, body, "Quality must not be empty.")
	assert.Contains(t, body, "Slot must not be empty")

	count, err := persistence.NewGormItemRepository(srv.db).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestItemCreateShortEscapableDescriptionRejected(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")

	// "<" escapes to "&lt;"; the escaped form must not satisfy the minimum
	// description length.
	w := srv.postForm(t, "/items", url.Values{
		"name":        {"Longsword"},
		"description": {"<"},
		"quality":     {"Epic"},
		"slot":        {slot.ID.String()},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Description must not be empty.")

	count, err := persistence.NewGormItemRepository(srv.db).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestItemCreateUnreadableUploadFails(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")

	// A multipart body that is cut off inside the file part cannot be read;
	// that is a request failure, not a no-image submit.
	body := "--BOUNDARY\r\n" +
		"Content-Disposition: form-data; name=\"name\"\r\n\r\nLongsword\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Disposition: form-data; name=\"slot\"\r\n\r\n" + slot.ID.String() + "\r\n" +
		"--BOUNDARY\r\n" +
		"Content-Disposition: form-data; name=\"file\"; filename=\"sword.png\"\r\n" +
		"Content-Type: image/png\r\n\r\n\x89PNG"

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, "/items", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=BOUNDARY")
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Something went wrong")

	count, err := persistence.NewGormItemRepository(srv.db).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, srv.media.Len())
}

func TestItemUpdateWrongSecurityCodeReRenders(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")
	item := srv.seedItem(t, "Longsword", slot.ID)

	w := srv.postForm(t, "/items/"+item.ID.String(), url.Values{
		"name":          {"Claymore"},
		"description":   {"A much bigger blade"},
		"quality":       {"Epic"},
		"slot":          {slot.ID.String()},
		"security_code": {"wrong"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong security code.")

	stored, err := persistence.NewGormItemRepository(srv.db).FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Longsword", stored.Name)
}

func TestItemUpdateWithCodeRedirects(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")
	item := srv.seedItem(t, "Longsword", slot.ID)

	w := srv.postForm(t, "/items/"+item.ID.String(), url.Values{
		"name":          {"Claymore"},
		"description":   {"A much bigger blade"},
		"quality":       {"Epic"},
		"slot":          {slot.ID.String()},
		"security_code": {testSecurityCode},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/items/"+item.ID.String(), w.Header().Get("Location"))

	stored, err := persistence.NewGormItemRepository(srv.db).FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Claymore", stored.Name)
	assert.Equal(t, inventory.NoImage, stored.ImageURL)
}

func TestItemDeleteBlockedByListings(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")
	item := srv.seedItem(t, "Longsword", slot.ID)
	seller := srv.seedSeller(t, "Bazaar")
	srv.seedListing(t, item.ID, seller.ID, 3)

	w := srv.postForm(t, "/items/"+item.ID.String()+"/delete", url.Values{
		"security_code": {testSecurityCode},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Item still has stocked listings.")

	_, err := persistence.NewGormItemRepository(srv.db).FindByID(context.Background(), item.ID)
	assert.NoError(t, err)
}

func TestItemDeleteSucceeds(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")
	item := srv.seedItem(t, "Longsword", slot.ID)

	w := srv.postForm(t, "/items/"+item.ID.String()+"/delete", url.Values{
		"security_code": {testSecurityCode},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/items", w.Header().Get("Location"))
}

func TestItemDeleteConfirmMissingItemRedirects(t *testing.T) {
	srv := newTestServer(t)

	w := srv.get(t, "/items/"+uuid.New().String()+"/delete")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/items", w.Header().Get("Location"))
}

func TestSellerCreateAndRename(t *testing.T) {
	srv := newTestServer(t)

	w := srv.postForm(t, "/sellers", url.Values{"name": {"Ye Olde Shoppe"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/sellers/"))

	w = srv.postForm(t, location, url.Values{"name": {"New Shoppe"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = srv.get(t, location)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Shoppe")
}

func TestSellerCreateEmptyNameReRenders(t *testing.T) {
	srv := newTestServer(t)

	w := srv.postForm(t, "/sellers", url.Values{"name": {"   "}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Name must not be empty.")
}

func TestSellerDeleteGates(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")
	item := srv.seedItem(t, "Longsword", slot.ID)
	seller := srv.seedSeller(t, "Bazaar")
	listing := srv.seedListing(t, item.ID, seller.ID, 3)

	w := srv.postForm(t, "/sellers/"+seller.ID.String()+"/delete", url.Values{
		"security_code": {testSecurityCode},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Seller still has stocked listings.")

	require.NoError(t, persistence.NewGormItemInstanceRepository(srv.db).Delete(context.Background(), listing.ID))

	w = srv.postForm(t, "/sellers/"+seller.ID.String()+"/delete", url.Values{
		"security_code": {"wrong"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong security code.")

	w = srv.postForm(t, "/sellers/"+seller.ID.String()+"/delete", url.Values{
		"security_code": {testSecurityCode},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/sellers", w.Header().Get("Location"))
}

func TestListingLifecycle(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")
	item := srv.seedItem(t, "Longsword", slot.ID)
	seller := srv.seedSeller(t, "Bazaar")

	w := srv.postForm(t, "/listings", url.Values{
		"item":   {item.ID.String()},
		"seller": {seller.ID.String()},
		"stock":  {"12"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = srv.get(t, "/listings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Longsword")
	assert.Contains(t, w.Body.String(), "Bazaar")
}

func TestListingCreateRejectsNegativeStock(t *testing.T) {
	srv := newTestServer(t)
	slot := srv.seedSlot(t, "Weapon")
	item := srv.seedItem(t, "Longsword", slot.ID)
	seller := srv.seedSeller(t, "Bazaar")

	w := srv.postForm(t, "/listings", url.Values{
		"item":   {item.ID.String()},
		"seller": {seller.ID.String()},
		"stock":  {"-1"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Number of stocks must be a non-negative number.")
}

func TestSlotListRenders(t *testing.T) {
	srv := newTestServer(t)
	srv.seedSlot(t, "Head")
	srv.seedSlot(t, "Chest")

	w := srv.get(t, "/slots")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Head")
	assert.Contains(t, w.Body.String(), "Chest")
}
