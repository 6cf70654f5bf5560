package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/myrepublic-hub/network-hub-backend/internal/config"
	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/monitoring"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
)

// ============================================
// Contact Service
// ============================================

type ContactService interface {
	// Submit validates and stores a lead, returning the WhatsApp deep
	// link the frontend opens next.
	Submit(ctx context.Context, req *models.ContactFormRequest) *models.FormSubmissionResponse
	GetAll(ctx context.Context) ([]*repository.ContactFormSubmission, error)
	GetByID(ctx context.Context, id int64) (*repository.ContactFormSubmission, error)
	// WhatsAppLink composes the company deep link for a stored submission.
	WhatsAppLink(submission *repository.ContactFormSubmission, productName string) string
	MapsLink(lat, lng float64) string
}

type contactService struct {
	cfg             *config.Config
	contactFormRepo repository.ContactFormRepository
	productRepo     repository.ProductRepository
}

func NewContactService(
	cfg *config.Config,
	contactFormRepo repository.ContactFormRepository,
	productRepo repository.ProductRepository,
) ContactService {
	return &contactService{
		cfg:             cfg,
		contactFormRepo: contactFormRepo,
		productRepo:     productRepo,
	}
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

func (s *contactService) Submit(ctx context.Context, req *models.ContactFormRequest) *models.FormSubmissionResponse {
	if msg := s.validate(req); msg != "" {
		return errorResult(msg)
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return errorResult("gagal memeriksa paket yang dipilih")
	}
	if product == nil {
		return errorResult("paket yang dipilih tidak ditemukan")
	}

	submission := &repository.ContactFormSubmission{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		PhoneNumber:     normalizePhone(req.PhoneNumber),
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		ProductID:       product.ID,
		PackagePrice:    product.Price,
		SubmittedBy:     req.SubmittedBy,
	}
	if err := s.contactFormRepo.Create(ctx, submission); err != nil {
		return errorResult("gagal menyimpan formulir")
	}

	monitoring.ContactFormSubmissionsTotal.WithLabelValues("success").Inc()
	return &models.FormSubmissionResponse{
		Status:       "Success",
		SubmissionID: &submission.ID,
		WhatsappLink: s.WhatsAppLink(submission, product.Name),
		MapsLink:     s.MapsLink(submission.Latitude, submission.Longitude),
	}
}

func (s *contactService) GetAll(ctx context.Context) ([]*repository.ContactFormSubmission, error) {
	return s.contactFormRepo.FindAll(ctx)
}

func (s *contactService) GetByID(ctx context.Context, id int64) (*repository.ContactFormSubmission, error) {
	submission, err := s.contactFormRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, ErrNotFound
	}
	return submission, nil
}

func (s *contactService) WhatsAppLink(submission *repository.ContactFormSubmission, productName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Halo, saya %s ingin berlangganan paket %s (Rp%d/tahun).\n",
		submission.CustomerName, productName, submission.PackagePrice)
	fmt.Fprintf(&b, "Alamat: %s\n", submission.CustomerAddress)
	fmt.Fprintf(&b, "No. HP: %s", submission.PhoneNumber)
	if submission.Latitude != 0 || submission.Longitude != 0 {
		fmt.Fprintf(&b, "\nLokasi: %s", s.MapsLink(submission.Latitude, submission.Longitude))
	}

	return fmt.Sprintf("https://wa.me/%s?text=%s",
		s.cfg.CompanyWhatsAppNumber, url.QueryEscape(b.String()))
}

func (s *contactService) MapsLink(lat, lng float64) string {
	return fmt.Sprintf("https://maps.google.com/maps?q=%.6f,%.6f", lat, lng)
}

func (s *contactService) validate(req *models.ContactFormRequest) string {
	if strings.TrimSpace(req.CustomerName) == "" {
		return "nama pelanggan wajib diisi"
	}
	if strings.TrimSpace(req.CustomerAddress) == "" {
		return "alamat pelanggan wajib diisi"
	}
	if !phonePattern.MatchString(normalizePhone(req.PhoneNumber)) {
		return "nomor telepon tidak valid"
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		return "latitude di luar jangkauan"
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return "longitude di luar jangkauan"
	}
	return ""
}

func normalizePhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	// Local numbers are stored in international form.
	if strings.HasPrefix(cleaned, "0") {
		cleaned = "62" + cleaned[1:]
	}
	return cleaned
}

func errorResult(msg string) *models.FormSubmissionResponse {
	monitoring.ContactFormSubmissionsTotal.WithLabelValues("error").Inc()
	return &models.FormSubmissionResponse{Status: "Error", Message: &msg}
}
