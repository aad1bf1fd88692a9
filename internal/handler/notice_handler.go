package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"notice-board/internal/domain"
	"notice-board/internal/middleware"
	"notice-board/internal/service/interest"
	"notice-board/internal/service/notice"
)

type NoticeHandler struct {
	noticeService   notice.Service
	interestService interest.Service
}

func NewNoticeHandler(noticeService notice.Service, interestService interest.Service) *NoticeHandler {
	return &NoticeHandler{
		noticeService:   noticeService,
		interestService: interestService,
	}
}

func (h *NoticeHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	query := notice.ListQuery{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}

	notices, err := h.noticeService.List(c.Context(), user, query)
	if err != nil {
		if errors.Is(err, notice.ErrInvalidCategory) {
			return middleware.BadRequest("Invalid category")
		}
		if errors.Is(err, notice.ErrInvalidStatus) {
			return middleware.BadRequest("Invalid status")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(notices)
}

func (h *NoticeHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	noticeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NotFound("Notice not found.")
	}

	result, err := h.noticeService.GetByID(c.Context(), user, noticeID)
	if err != nil {
		if errors.Is(err, domain.ErrNoticeNotFound) {
			return middleware.NotFound("Notice not found.")
		}
		if errors.Is(err, notice.ErrAccessDenied) {
			return middleware.Forbidden("Access denied.")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NoticeHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateNoticeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.noticeService.Create(c.Context(), user, input)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return middleware.BadRequest(validationErr.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *NoticeHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	noticeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NotFound("Notice not found.")
	}

	var input domain.UpdateNoticeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.noticeService.Update(c.Context(), user, noticeID, input)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return middleware.BadRequest(validationErr.Error())
		}
		if errors.Is(err, domain.ErrNoticeNotFound) {
			return middleware.NotFound("Notice not found.")
		}
		if errors.Is(err, notice.ErrNotAuthor) {
			return middleware.Forbidden("You can only edit your own notices.")
		}
		if errors.Is(err, notice.ErrPublishedLocked) {
			return middleware.Forbidden("Cannot edit published notices.")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NoticeHandler) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	noticeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NotFound("Notice not found.")
	}

	var input domain.UpdateNoticeStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.noticeService.UpdateStatus(c.Context(), user, noticeID, input.Status)
	if err != nil {
		if errors.Is(err, notice.ErrInvalidTransition) {
			return middleware.BadRequest(`Status must be "published" or "rejected".`)
		}
		if errors.Is(err, domain.ErrNoticeNotFound) {
			return middleware.NotFound("Notice not found.")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NoticeHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	noticeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NotFound("Notice not found.")
	}

	if err := h.noticeService.Delete(c.Context(), user, noticeID); err != nil {
		if errors.Is(err, domain.ErrNoticeNotFound) {
			return middleware.NotFound("Notice not found.")
		}
		if errors.Is(err, notice.ErrNotAuthor) {
			return middleware.Forbidden("You can only delete your own notices.")
		}
		if errors.Is(err, notice.ErrPublishedLocked) {
			return middleware.Forbidden("Cannot delete published notices.")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notice deleted successfully.",
	})
}

func (h *NoticeHandler) ToggleInterest(c *fiber.Ctx) error {
	return h.toggle(c, domain.InterestInterested)
}

func (h *NoticeHandler) ToggleReminder(c *fiber.Ctx) error {
	return h.toggle(c, domain.InterestRemindMe)
}

func (h *NoticeHandler) toggle(c *fiber.Ctx, interestType domain.InterestType) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	noticeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NotFound("Notice not found")
	}

	result, err := h.interestService.Toggle(c.Context(), user, noticeID, interestType)
	if err != nil {
		if errors.Is(err, domain.ErrNoticeNotFound) {
			return middleware.NotFound("Notice not found")
		}
		if errors.Is(err, domain.ErrDuplicateInterest) {
			return middleware.Conflict("Interest already recorded")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
