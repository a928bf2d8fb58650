// internal/handlers/admin/admin.go
package admin

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"customer-admin/internal/domain/customer"
	"customer-admin/internal/ui"
	"customer-admin/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded admin pages for gin's HTML renderer.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

type Options struct {
	FlashDelay       time.Duration
	DeleteFlashDelay time.Duration
}

// AdminHandler serves the browser pages. Every action goes through the
// customer REST API via api, never the service directly.
type AdminHandler struct {
	api       ui.CustomerAPI
	validator *validation.Validator
	opts      Options
	logger    *zap.Logger
}

func NewAdminHandler(api ui.CustomerAPI, v *validation.Validator, opts Options, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		api:       api,
		validator: v,
		opts:      opts,
		logger:    logger,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Index)
	rg.GET("/customers/new", h.NewForm)
	rg.POST("/customers/new", h.SubmitNew)
	rg.GET("/customers/:id/edit", h.EditForm)
	rg.POST("/customers/:id/edit", h.SubmitEdit)
	rg.GET("/customers/:id/delete", h.DeletePrompt)
	rg.POST("/customers/:id/delete", h.AnswerDelete)
}

// flash codes carried in the redirect after a mutation
const (
	flashAdded   = "added"
	flashUpdated = "updated"
	flashDeleted = "deleted"
)

type pageData struct {
	Customers    []customer.Customer
	LoadError    string
	Flash        string
	FlashDelayMS int64
	Form         *formView
	Confirm      *confirmView
}

type formView struct {
	Title  string
	Action string
	Notice string
	Fields []fieldView
}

type fieldView struct {
	Name    string
	Label   string
	Type    string
	Value   string
	Max     string
	Message string
}

type confirmView struct {
	Action string
	Prompt string
	Notice string
}

var fieldLabels = []struct {
	field validation.Field
	label string
	kind  string
}{
	{validation.FirstName, "First name", "text"},
	{validation.LastName, "Last name", "text"},
	{validation.DateOfBirth, "Date of birth", "date"},
	{validation.MobileNo, "Mobile number", "text"},
	{validation.AddressLineOne, "Address line 1", "text"},
	{validation.AddressLineTwo, "Address line 2", "text"},
	{validation.Age, "Age", "text"},
	{validation.Gender, "Gender", "select"},
	{validation.Email, "Email", "email"},
}

// Index renders the listing, with the transient banner after a mutation.
func (h *AdminHandler) Index(c *gin.Context) {
	listing := h.newListing()
	data := h.page(c, listing)

	switch c.Query("flash") {
	case flashAdded:
		data.Flash, data.FlashDelayMS = customer.MessageAdded, h.opts.FlashDelay.Milliseconds()
	case flashUpdated:
		data.Flash, data.FlashDelayMS = customer.MessageUpdated, h.opts.FlashDelay.Milliseconds()
	case flashDeleted:
		data.Flash, data.FlashDelayMS = customer.MessageDeleted, h.opts.DeleteFlashDelay.Milliseconds()
	}

	c.HTML(http.StatusOK, "admin.html", data)
}

func (h *AdminHandler) NewForm(c *gin.Context) {
	listing := h.newListing()
	data := h.page(c, listing)

	form, err := listing.OpenAdd()
	if err != nil {
		h.redirect(c, "")
		return
	}
	data.Form = h.formView(form, "/admin/customers/new", false)
	c.HTML(http.StatusOK, "admin.html", data)
}

func (h *AdminHandler) SubmitNew(c *gin.Context) {
	listing := h.newListing()
	form, err := listing.OpenAdd()
	if err != nil {
		h.redirect(c, "")
		return
	}
	h.submit(c, listing, form, "/admin/customers/new", flashAdded)
}

func (h *AdminHandler) EditForm(c *gin.Context) {
	listing := h.newListing()
	data := h.page(c, listing)

	form, ok := h.openEdit(c, listing)
	if !ok {
		return
	}
	data.Form = h.formView(form, editPath(form.ID()), false)
	c.HTML(http.StatusOK, "admin.html", data)
}

func (h *AdminHandler) SubmitEdit(c *gin.Context) {
	listing := h.newListing()
	form, ok := h.openEdit(c, listing)
	if !ok {
		return
	}
	h.submit(c, listing, form, editPath(form.ID()), flashUpdated)
}

func (h *AdminHandler) DeletePrompt(c *gin.Context) {
	listing := h.newListing()
	data := h.page(c, listing)

	confirm, ok := h.openDelete(c, listing)
	if !ok {
		return
	}
	data.Confirm = &confirmView{
		Action: deletePath(confirm.Target().ID),
		Prompt: confirm.Prompt(),
	}
	c.HTML(http.StatusOK, "admin.html", data)
}

func (h *AdminHandler) AnswerDelete(c *gin.Context) {
	listing := h.newListing()
	confirm, ok := h.openDelete(c, listing)
	if !ok {
		return
	}

	if c.PostForm("answer") != "yes" {
		confirm.No()
		h.redirect(c, "")
		return
	}

	if err := confirm.Yes(c.Request.Context()); err != nil {
		data := h.page(c, listing)
		data.Confirm = &confirmView{
			Action: deletePath(confirm.Target().ID),
			Prompt: confirm.Prompt(),
			Notice: confirm.Notice(),
		}
		c.HTML(http.StatusBadGateway, "admin.html", data)
		return
	}
	h.redirect(c, flashDeleted)
}

func (h *AdminHandler) submit(c *gin.Context, listing *ui.Listing, form *ui.Form, action, flash string) {
	var values validation.Values
	if err := c.ShouldBind(&values); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	if err := form.SetAll(values); err != nil {
		c.String(http.StatusConflict, err.Error())
		return
	}

	outcome, err := form.Submit(c.Request.Context())
	if outcome == ui.OutcomeSaved {
		form.Close()
		h.redirect(c, flash)
		return
	}

	status := http.StatusUnprocessableEntity
	switch outcome {
	case ui.OutcomeConflict:
		status = http.StatusConflict
	case ui.OutcomeFailed:
		status = http.StatusBadGateway
	case ui.OutcomeInvalid:
		if err != nil {
			h.logger.Warn("form values could not be converted", zap.Error(err))
		}
	}

	data := h.page(c, listing)
	data.Form = h.formView(form, action, true)
	c.HTML(status, "admin.html", data)
}

func (h *AdminHandler) newListing() *ui.Listing {
	return ui.NewListing(h.api, h.validator, h.logger)
}

// page loads the listing. A failed load still renders, with a notice.
func (h *AdminHandler) page(c *gin.Context, listing *ui.Listing) pageData {
	customers, err := listing.Customers(c.Request.Context())
	if err != nil {
		return pageData{Customers: []customer.Customer{}, LoadError: ui.GenericFailure}
	}
	return pageData{Customers: customers}
}

func (h *AdminHandler) openEdit(c *gin.Context, listing *ui.Listing) (*ui.Form, bool) {
	id, ok := h.loadFor(c, listing)
	if !ok {
		return nil, false
	}
	form, err := listing.OpenEdit(id)
	if err != nil {
		h.missing(c, err)
		return nil, false
	}
	return form, true
}

func (h *AdminHandler) openDelete(c *gin.Context, listing *ui.Listing) (*ui.Confirm, bool) {
	id, ok := h.loadFor(c, listing)
	if !ok {
		return nil, false
	}
	confirm, err := listing.OpenDelete(id)
	if err != nil {
		h.missing(c, err)
		return nil, false
	}
	return confirm, true
}

func (h *AdminHandler) loadFor(c *gin.Context, listing *ui.Listing) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid customer ID")
		return 0, false
	}
	if err := listing.Load(c.Request.Context()); err != nil {
		data := pageData{Customers: []customer.Customer{}, LoadError: ui.GenericFailure}
		c.HTML(http.StatusBadGateway, "admin.html", data)
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) missing(c *gin.Context, err error) {
	if errors.Is(err, ui.ErrUnknownID) {
		c.String(http.StatusNotFound, customer.MessageNotFound)
		return
	}
	c.String(http.StatusConflict, err.Error())
}

// formView renders form. Messages only show once the user has submitted.
func (h *AdminHandler) formView(form *ui.Form, action string, submitted bool) *formView {
	title := "Add customer"
	if form.Mode() == ui.ModeUpdate {
		title = "Edit customer"
	}

	values := form.Values()
	view := &formView{Title: title, Action: action, Notice: form.Notice()}
	for _, fl := range fieldLabels {
		fv := fieldView{
			Name:  string(fl.field),
			Label: fl.label,
			Type:  fl.kind,
			Value: values.Get(fl.field),
		}
		if fl.field == validation.DateOfBirth {
			fv.Max = time.Now().Format(customer.DateLayout)
		}
		if submitted {
			fv.Message = form.Message(fl.field)
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

func (h *AdminHandler) redirect(c *gin.Context, flash string) {
	target := "/admin"
	if flash != "" {
		target += "?" + url.Values{"flash": {flash}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}

func editPath(id int64) string {
	return "/admin/customers/" + strconv.FormatInt(id, 10) + "/edit"
}

func deletePath(id int64) string {
	return "/admin/customers/" + strconv.FormatInt(id, 10) + "/delete"
}
