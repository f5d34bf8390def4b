package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listAddresses(c *gin.Context) {
	user, ok := h.principal(c)
	if !ok {
		return
	}
	addresses, err := h.addresses.List(c.Request.Context(), user)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": addresses})
}

func (h *Handler) createAddress(c *gin.Context) {
	user, ok := h.principal(c)
	if !ok {
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address, err := h.addresses.Create(c.Request.Context(), req.input(user))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

func (h *Handler) getAddress(c *gin.Context) {
	user, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	address, err := h.addresses.Get(c.Request.Context(), user, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

func (h *Handler) updateAddress(c *gin.Context) {
	user, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	address, err := h.addresses.Update(c.Request.Context(), id, req.input(user))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

func (h *Handler) deleteAddress(c *gin.Context) {
	user, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.addresses.Delete(c.Request.Context(), user, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) setPrincipalAddress(c *gin.Context) {
	user, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	address, err := h.addresses.SetPrincipal(c.Request.Context(), user, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}
