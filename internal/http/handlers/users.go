package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rowanvale/usersvc/internal/domain/user"
)

type UsersStore interface {
	Create(ctx context.Context, req user.CreateUserRequest) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	Update(ctx context.Context, id int64, req user.UpdateUserRequest) (user.User, error)
	Delete(ctx context.Context, id int64) (user.User, error)
}

type UsersHandler struct {
	repo UsersStore
	log  *slog.Logger
}

func NewUsersHandler(repo UsersStore, log *slog.Logger) *UsersHandler {
	return &UsersHandler{repo: repo, log: log}
}

func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, err := h.repo.Create(ctx.Request.Context(), req)

	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			RespondConflict(ctx, "Email already exists")
			return
		}

		h.log.Error("create user failed", "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, u)
}

func (h *UsersHandler) GetUserByID(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		return
	}

	u, err := h.repo.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		h.log.Error("get user failed", "id", id, "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		return
	}

	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, err := h.repo.Update(ctx.Request.Context(), id, req)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, user.ErrDuplicateEmail):
			RespondConflict(ctx, "Email already exists")
		default:
			h.log.Error("update user failed", "id", id, "err", err)
			RespondInternal(ctx)
		}
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id, ok := parseID(ctx)

	if !ok {
		return
	}

	_, err := h.repo.Delete(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		h.log.Error("delete user failed", "id", id, "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		RespondBadRequest(ctx, "id must be an integer")
		return 0, false
	}

	return id, true
}
