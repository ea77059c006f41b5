package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/domain/apperror"
	"user-registry-api/internal/interface/api/rest/dto/user"
	"user-registry-api/internal/interface/api/rest/middleware"
)

type UserController struct {
	createService ports.UserCreateService
	listService   ports.UserListService
	logger        *zap.Logger
}

func NewUserController(
	r gin.IRouter,
	createService ports.UserCreateService,
	listService ports.UserListService,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		createService: createService,
		listService:   listService,
		logger:        logger,
	}

	r.GET(RouteUsers, uc.ListUsersHandler)
	r.POST(RouteUsers, uc.CreateUserHandler)

	return uc
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	if err := uc.createService.CreateUser(c.Request.Context(), user.ToCreateData(req)); err != nil {
		uc.fail(c, "CreateUser() error", err)
		return
	}

	respondOK(c, http.StatusCreated, nil)
}

func (uc *UserController) ListUsersHandler(c *gin.Context) {
	us, err := uc.listService.ListUsers(c.Request.Context())
	if err != nil {
		uc.fail(c, "ListUsers() error", err)
		return
	}

	respondOK(c, http.StatusOK, user.ToResponseUsers(us))
}

// fail maps the error taxonomy to a status. Client errors carry their own
// message; anything else is reported as a generic internal error.
func (uc *UserController) fail(c *gin.Context, op string, err error) {
	status := apperror.StatusOf(err)
	if status < http.StatusInternalServerError {
		respondError(c, status, err.Error())
		return
	}

	uc.logger.Error(op,
		zap.Error(err),
		zap.String("error_name", apperror.NameOf(err)),
		zap.String("request_id", c.GetString(middleware.KeyRequestID)),
	)
	respondError(c, status, msgInternalError)
}
