package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"customer-admin/internal/client"
	"customer-admin/internal/domain/customer"
	customerHandler "customer-admin/internal/handlers/customer"
	"customer-admin/internal/repository/memory"
	service "customer-admin/internal/service/customer"
	"customer-admin/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fixture struct {
	admin *gin.Engine
	api   *client.CustomerClient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	v := validation.New()

	apiEngine := gin.New()
	svc := service.NewCustomerService(memory.NewCustomerRepository(), v, nil, zap.NewNop())
	customerHandler.NewCustomerHandler(svc, zap.NewNop()).RegisterRoutes(apiEngine.Group("/customer"))
	apiSrv := httptest.NewServer(apiEngine)
	t.Cleanup(apiSrv.Close)

	api := client.New(client.Config{BaseURL: apiSrv.URL}, zap.NewNop())

	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	adminEngine := gin.New()
	adminEngine.SetHTMLTemplate(tmpl)
	opts := Options{FlashDelay: time.Second, DeleteFlashDelay: 800 * time.Millisecond}
	NewAdminHandler(api, v, opts, zap.NewNop()).RegisterRoutes(adminEngine.Group("/admin"))

	return &fixture{admin: adminEngine, api: api}
}

func (f *fixture) seed(t *testing.T, first, mobile, email string) *customer.Customer {
	t.Helper()
	ack, err := f.api.Create(context.Background(), &customer.Customer{
		FirstName:      first,
		LastName:       "Adler",
		DateOfBirth:    customer.NewDate(time.Date(1991, 4, 4, 0, 0, 0, 0, time.UTC)),
		MobileNo:       mobile,
		AddressLineOne: "Briony Lodge",
		AddressLineTwo: "St John's Wood",
		Age:            33,
		Gender:         customer.GenderFemale,
		Email:          email,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return ack.Customer
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.admin.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (f *fixture) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.admin.ServeHTTP(w, req)
	return w
}

func formFor(first, mobile, email string) url.Values {
	return url.Values{
		"firstName":      {first},
		"lastName":       {"Watson"},
		"dateOfBirth":    {"1989-07-07"},
		"mobileNo":       {mobile},
		"addressLineOne": {"221B Baker Street"},
		"addressLineTwo": {"London"},
		"age":            {"35"},
		"gender":         {"0"},
		"email":          {email},
	}
}

func TestIndex_ListsCustomers(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Irene", "0711111111", "irene@example.com")

	w := f.get("/admin")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Irene", "0711111111", "1991-04-04", "Female", "/admin/customers/1/edit"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in listing", want)
		}
	}
}

func TestSubmitNew(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Irene", "0711111111", "irene@example.com")

	w := f.post("/admin/customers/new", formFor("John", "0722222222", "john@example.com"))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin?flash=added" {
		t.Fatalf("expected redirect with flash, got %d %q", w.Code, w.Header().Get("Location"))
	}

	list, _ := f.api.List(context.Background())
	if len(list) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(list))
	}

	page := f.get("/admin?flash=added").Body.String()
	if !strings.Contains(page, "Data added successfully.") || !strings.Contains(page, `data-delay="1000"`) {
		t.Errorf("expected success banner")
	}
}

func TestSubmitNew_Conflict(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "Irene", "0711111111", "irene@example.com")

	w := f.post("/admin/customers/new", formFor("John", "0711111111", "irene@example.com"))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Mobile already exists.") || !strings.Contains(body, "Email already exists.") {
		t.Errorf("expected both conflict messages in the form")
	}
	if !strings.Contains(body, `value="John"`) {
		t.Errorf("form should keep the typed values")
	}
}

func TestSubmitNew_Invalid(t *testing.T) {
	f := newFixture(t)
	form := formFor("", "07", "john@example.com")

	w := f.post("/admin/customers/new", form)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "First Name cannot be empty.") ||
		!strings.Contains(body, "Mobile number must be at least 10 characters long.") {
		t.Errorf("expected per-field messages, got %s", body)
	}
	list, _ := f.api.List(context.Background())
	if len(list) != 0 {
		t.Errorf("invalid form must not reach the API")
	}
}

func TestEdit(t *testing.T) {
	f := newFixture(t)
	c := f.seed(t, "Irene", "0711111111", "irene@example.com")

	page := f.get(editPath(c.ID)).Body.String()
	if !strings.Contains(page, "Edit customer") || !strings.Contains(page, `value="Irene"`) {
		t.Fatalf("expected prepopulated edit form")
	}

	form := formFor("Irene", c.MobileNo, c.Email)
	w := f.post(editPath(c.ID), form)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin?flash=updated" {
		t.Fatalf("expected redirect, got %d", w.Code)
	}

	if w := f.get("/admin/customers/99/edit"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown id, got %d", w.Code)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	c := f.seed(t, "Irene", "0711111111", "irene@example.com")

	page := f.get(deletePath(c.ID)).Body.String()
	if !strings.Contains(page, "Are you sure you want to delete this customer Irene Adler ?") {
		t.Fatalf("expected delete prompt")
	}

	w := f.post(deletePath(c.ID), url.Values{"answer": {"no"}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin" {
		t.Fatalf("expected plain redirect on no, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if list, _ := f.api.List(context.Background()); len(list) != 1 {
		t.Fatal("no must not delete")
	}

	w = f.post(deletePath(c.ID), url.Values{"answer": {"yes"}})
	if w.Header().Get("Location") != "/admin?flash=deleted" {
		t.Fatalf("expected deleted flash, got %q", w.Header().Get("Location"))
	}
	if list, _ := f.api.List(context.Background()); len(list) != 0 {
		t.Fatal("yes must delete")
	}

	page = f.get("/admin?flash=deleted").Body.String()
	if !strings.Contains(page, "Data deleted.") || !strings.Contains(page, `data-delay="800"`) {
		t.Errorf("expected delete banner")
	}
}

func TestIndex_APIDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	tmpl, _ := Templates()
	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	api := client.New(client.Config{BaseURL: dead.URL, Timeout: time.Second}, zap.NewNop())
	NewAdminHandler(api, validation.New(), Options{}, zap.NewNop()).RegisterRoutes(engine.Group("/admin"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Something went wrong, please try again.") {
		t.Errorf("expected page with generic notice, got %d", w.Code)
	}
}
