package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"minikadimlar/internal/attendance"
	"minikadimlar/internal/auth"
	"minikadimlar/internal/httpmiddleware"
	"minikadimlar/internal/photo"
	"minikadimlar/internal/queue"
	"minikadimlar/internal/student"
)

// StudentStore is the student persistence surface the handlers need.
type StudentStore interface {
	List(ctx context.Context) ([]student.Student, error)
	Get(ctx context.Context, id int64) (*student.Student, error)
	Create(ctx context.Context, f student.Fields, photoRef string) (int64, error)
	Update(ctx context.Context, id int64, f student.Fields, photoRef string) error
	UpdatePhoto(ctx context.Context, id int64, photoRef string) (string, error)
	Delete(ctx context.Context, id int64) (string, error)
}

// Attendance is the state engine surface the handlers need.
type Attendance interface {
	Toggle(ctx context.Context, studentID int64) (bool, error)
	History(ctx context.Context, studentID int64) ([]attendance.Entry, error)
}

// Authenticator checks operator credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (bool, error)
}

// SessionConfig carries what login needs to mint the session cookie.
type SessionConfig struct {
	Issuer     string
	SigningKey string
	TTL        time.Duration
	Secure     bool
}

// Handler serves the admin pages.
type Handler struct {
	students StudentStore
	att      Attendance
	users    Authenticator
	photos   *photo.Store
	q        queue.Queue
	throttle *httpmiddleware.LoginThrottle
	session  SessionConfig
}

// New creates the handler.
func New(students StudentStore, att Attendance, users Authenticator,
	photos *photo.Store, q queue.Queue, throttle *httpmiddleware.LoginThrottle,
	session SessionConfig) *Handler {
	return &Handler{
		students: students,
		att:      att,
		users:    users,
		photos:   photos,
		q:        q,
		throttle: throttle,
		session:  session,
	}
}

// Routes registers everything on the router. guard protects the operator
// pages; the landing and login routes stay public.
func (h *Handler) Routes(r *gin.Engine, guard gin.HandlerFunc) {
	r.GET("/", h.Home)
	r.GET("/login-page", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/cikis", h.Logout)

	panel := r.Group("/", guard)
	panel.GET("/panel", h.Panel)
	panel.GET("/yeni-ogrenci", h.NewStudentPage)
	panel.POST("/ogrenci-ekle", h.CreateStudent)
	panel.GET("/ogrenci-detay/:id", h.Detail)
	panel.POST("/ogrenci-guncelle/:id", h.UpdateStudent)
	panel.DELETE("/ogrenci-sil/:id", h.DeleteStudent)
	panel.POST("/durum-degistir/:id", h.TogglePresence)
	panel.POST("/upload-photo/:id", h.UploadPhoto)
}

// ---------- Public pages ----------

func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", nil)
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

// Login checks credentials and mints the session cookie. Failures render the
// error card and never redirect; unknown user and wrong password are not
// distinguished.
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	ip := c.ClientIP()

	if h.throttle.Blocked(ctx, ip) {
		loginFailures.Inc()
		c.HTML(http.StatusTooManyRequests, "login_error.html", gin.H{
			"Message": "Çok fazla hatalı deneme. Lütfen birkaç dakika sonra tekrar deneyin.",
		})
		return
	}

	email := c.PostForm("email")
	password := c.PostForm("password")

	ok, err := h.users.Authenticate(ctx, email, password)
	if err != nil {
		log.Printf("login check failed: %v", err)
		c.HTML(http.StatusInternalServerError, "login_error.html", gin.H{
			"Message": "Sistemde bir sorun oluştu. Lütfen tekrar deneyin.",
		})
		return
	}
	if !ok {
		loginFailures.Inc()
		h.throttle.RecordFailure(ctx, ip)
		c.HTML(http.StatusUnauthorized, "login_error.html", gin.H{
			"Message": "E-posta veya şifreniz doğru görünmüyor.",
		})
		return
	}

	h.throttle.Reset(ctx, ip)
	token, exp, err := auth.IssueSession(email, h.session.Issuer, h.session.SigningKey, h.session.TTL)
	if err != nil {
		log.Printf("session issue failed: %v", err)
		c.HTML(http.StatusInternalServerError, "login_error.html", gin.H{
			"Message": "Sistemde bir sorun oluştu. Lütfen tekrar deneyin.",
		})
		return
	}
	c.SetCookie(auth.CookieName, token, int(time.Until(exp).Seconds()), "/", "", h.session.Secure, true)
	c.Redirect(http.StatusFound, "/panel")
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.session.Secure, true)
	c.Redirect(http.StatusFound, "/")
}

// ---------- Panel ----------

func (h *Handler) Panel(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Öğrenci listesi yüklenemedi.")
		return
	}
	c.HTML(http.StatusOK, "panel.html", buildRoster(students))
}

func (h *Handler) NewStudentPage(c *gin.Context) {
	c.HTML(http.StatusOK, "new_student.html", gin.H{})
}

func (h *Handler) CreateStudent(c *gin.Context) {
	var form studentForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "new_student.html", gin.H{
			"Error": "Formda eksik ya da hatalı alanlar var. Lütfen kontrol edin.",
		})
		return
	}

	photoRef, err := h.savePhotoIfPresent(c)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "new_student.html", gin.H{
			"Error": "Fotoğraf kaydedilemedi. Lütfen tekrar deneyin.",
		})
		return
	}

	if _, err := h.students.Create(c.Request.Context(), form.fields(), photoRef); err != nil {
		log.Printf("student create failed: %v", err)
		photo.Discard(c.Request.Context(), h.q, photoRef)
		c.HTML(http.StatusInternalServerError, "new_student.html", gin.H{
			"Error": "Kayıt tamamlanamadı. Lütfen tekrar deneyin.",
		})
		return
	}
	c.Redirect(http.StatusFound, "/panel")
}

// ---------- Detail ----------

func (h *Handler) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.String(http.StatusNotFound, "Öğrenci bulunamadı.")
		return
	}
	s, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Öğrenci yüklenemedi.")
		return
	}
	if s == nil {
		c.String(http.StatusNotFound, "Öğrenci bulunamadı.")
		return
	}
	entries, err := h.att.History(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Hareket kayıtları yüklenemedi.")
		return
	}
	c.HTML(http.StatusOK, "detail.html", buildDetail(*s, entries))
}

func (h *Handler) UpdateStudent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.String(http.StatusNotFound, "Öğrenci bulunamadı.")
		return
	}
	s, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusInternalServerError, "Öğrenci yüklenemedi.")
		return
	}
	if s == nil {
		c.String(http.StatusNotFound, "Öğrenci bulunamadı.")
		return
	}

	var form studentForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Formda eksik ya da hatalı alanlar var.")
		return
	}

	photoRef, err := h.savePhotoIfPresent(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "Fotoğraf kaydedilemedi.")
		return
	}

	if err := h.students.Update(c.Request.Context(), id, form.fields(), photoRef); err != nil {
		log.Printf("student update failed: %v", err)
		photo.Discard(c.Request.Context(), h.q, photoRef)
		c.String(http.StatusInternalServerError, "Güncelleme tamamlanamadı.")
		return
	}
	if photoRef != "" {
		photo.Discard(c.Request.Context(), h.q, s.PhotoRef)
	}
	c.Redirect(http.StatusFound, "/ogrenci-detay/"+strconv.FormatInt(id, 10))
}

func (h *Handler) DeleteStudent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	photoRef, err := h.students.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	photo.Discard(c.Request.Context(), h.q, photoRef)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---------- Attendance ----------

func (h *Handler) TogglePresence(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	newState, err := h.att.Toggle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, attendance.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if newState {
		checkinsTotal.Inc()
	} else {
		checkoutsTotal.Inc()
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---------- Photos ----------

func (h *Handler) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	file, err := c.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foto field required"})
		return
	}
	name, err := h.photos.Save(file)
	if err != nil {
		log.Printf("photo save failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "photo save failed"})
		return
	}
	prev, err := h.students.UpdatePhoto(c.Request.Context(), id, name)
	if err != nil {
		photo.Discard(c.Request.Context(), h.q, name)
		if errors.Is(err, student.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	photo.Discard(c.Request.Context(), h.q, prev)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ---------- Helpers ----------

func (h *Handler) savePhotoIfPresent(c *gin.Context) (string, error) {
	file, err := c.FormFile("foto")
	if err != nil {
		return "", nil
	}
	return h.photos.Save(file)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
