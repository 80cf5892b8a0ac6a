package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meli_listing_v1/internal/api/dto"
	"meli_listing_v1/internal/repository"
	"meli_listing_v1/internal/service"
)

type ClientController struct {
	clientSvc *service.ClientService
}

func NewClientController(clientSvc *service.ClientService) *ClientController {
	return &ClientController{clientSvc: clientSvc}
}

// List 客户列表
// @Summary 客户列表
// @Description 返回调用方可见的全部客户，首次访问写入演示数据
// @Tags Client (客户管理)
// @Produce json
// @Success 200 {array} model.Client
// @Router /api/clients [get]
func (c *ClientController) List(ctx *gin.Context) {
	clients, err := c.clientSvc.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, clients)
}

// Get 客户详情
// @Summary 客户详情
// @Tags Client (客户管理)
// @Produce json
// @Param id path string true "客户ID"
// @Success 200 {object} model.Client
// @Failure 404 {object} map[string]string "客户不存在"
// @Router /api/clients/{id} [get]
func (c *ClientController) Get(ctx *gin.Context) {
	client, err := c.clientSvc.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, client)
}

// Create 新建客户
// @Summary 新建客户
// @Description 状态默认 Ativo，未关联外部账号
// @Tags Client (客户管理)
// @Accept json
// @Produce json
// @Param body body dto.CreateClientReq true "客户信息"
// @Success 201 {object} model.Client
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/clients [post]
func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.CreateClientReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	client, err := c.clientSvc.Create(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, client)
}
