package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/medregistry/clinic-backend/internal/dto"
	"github.com/medregistry/clinic-backend/internal/services"
	"github.com/medregistry/clinic-backend/internal/session"
)

type ProgramHandler struct {
	programService *services.ProgramService
}

func NewProgramHandler(programService *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

func (h *ProgramHandler) Create(c *fiber.Ctx) error {
	doctorID, err := session.CurrentDoctorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	program, err := h.programService.Create(&req, doctorID)
	if err != nil {
		if errors.Is(err, services.ErrProgramName) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create program",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(program)
}

// List returns all programs, or with `?mine=1` only those the acting
// doctor created.
func (h *ProgramHandler) List(c *fiber.Ctx) error {
	var (
		programs []dto.ProgramResponse
		err      error
	)

	if c.Query("mine") == "1" {
		doctorID, idErr := session.CurrentDoctorID(c)
		if idErr != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		programs, err = h.programService.ListByDoctor(doctorID)
	} else {
		programs, err = h.programService.List()
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch programs",
		})
	}

	return c.JSON(programs)
}

func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid program ID",
		})
	}

	program, err := h.programService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrProgramNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch program",
		})
	}

	return c.JSON(program)
}

func (h *ProgramHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid program ID",
		})
	}

	var req dto.UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	program, err := h.programService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrProgramNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrProgramName) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update program",
		})
	}

	return c.JSON(program)
}

func (h *ProgramHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid program ID",
		})
	}

	if err := h.programService.Delete(id); err != nil {
		if errors.Is(err, services.ErrProgramNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete program",
		})
	}

	return c.JSON(fiber.Map{"message": "Program deleted successfully"})
}

func (h *ProgramHandler) Summary(c *fiber.Ctx) error {
	doctorID, err := session.CurrentDoctorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	summary, err := h.programService.Summary(doctorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch summary",
		})
	}

	return c.JSON(summary)
}
