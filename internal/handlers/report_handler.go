package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/medregistry/clinic-backend/internal/dto"
	"github.com/medregistry/clinic-backend/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	mailService   *services.MailService
}

func NewReportHandler(reportService *services.ReportService, mailService *services.MailService) *ReportHandler {
	return &ReportHandler{reportService: reportService, mailService: mailService}
}

// ClientsCSV streams the filtered client registry as a CSV attachment.
// `?program=` and `?after=` apply the documented lenient filters.
func (h *ReportHandler) ClientsCSV(c *fiber.Ctx) error {
	clients, err := h.reportService.FilteredClients(c.Query("program"), c.Query("after"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build report",
		})
	}

	data, err := h.reportService.ClientsCSV(clients)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build report",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="filtered_clients.csv"`)
	return c.Send(data)
}

func (h *ReportHandler) ClientsPDF(c *fiber.Ctx) error {
	clients, err := h.reportService.FilteredClients(c.Query("program"), c.Query("after"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build report",
		})
	}

	data, err := h.reportService.ClientsPDF(clients)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build report",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="client_registry_filtered.pdf"`)
	return c.Send(data)
}

func (h *ReportHandler) ProgramsCSV(c *fiber.Ctx) error {
	programs, err := h.reportService.Programs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build report",
		})
	}

	data, err := h.reportService.ProgramsCSV(programs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build report",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="programs_list.csv"`)
	return c.Send(data)
}

func (h *ReportHandler) ProgramsPDF(c *fiber.Ctx) error {
	programs, err := h.reportService.Programs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build report",
		})
	}

	data, err := h.reportService.ProgramsPDF(programs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build report",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="programs_report.pdf"`)
	return c.Send(data)
}

// Email builds the filtered client registry PDF and mails it. Transport
// failures surface as an opaque message, never the SMTP error.
func (h *ReportHandler) Email(c *fiber.Ctx) error {
	var req dto.EmailReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	clients, err := h.reportService.FilteredClients(req.Program, req.After)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build report",
		})
	}

	pdf, err := h.reportService.ClientsPDF(clients)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to build report",
		})
	}

	if err := h.mailService.SendClientReport(req.Recipients, pdf); err != nil {
		if errors.Is(err, services.ErrRecipientsRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send report",
		})
	}

	return c.JSON(fiber.Map{"message": "Report sent successfully"})
}
