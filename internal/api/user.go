package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventtrack/internal/directory"
)

func (s *Server) createUser(c *gin.Context) {
	var req struct {
		IDNumber   string         `json:"idNumber"`
		Name       string         `json:"name"`
		Role       directory.Role `json:"role"`
		Year       string         `json:"year"`
		Course     string         `json:"course"`
		Department string         `json:"department"`
		Position   string         `json:"position"`
		Notes      string         `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := s.users.Create(c.Request.Context(), directory.User{
		IDNumber:   req.IDNumber,
		Name:       req.Name,
		Role:       req.Role,
		Year:       req.Year,
		Course:     req.Course,
		Department: req.Department,
		Position:   req.Position,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": u})
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []directory.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) getUserByIDNumber(c *gin.Context) {
	u, err := s.users.GetByIDNumber(c.Request.Context(), c.Param("idNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// getUserByStorageID serves the storage-id lookup. The /users/mongo/:id
// path is kept verbatim for wire compatibility even though the ids are
// UUIDs here.
func (s *Server) getUserByStorageID(c *gin.Context) {
	u, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) updateUser(c *gin.Context) {
	var patch directory.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	u, err := s.users.Update(c.Request.Context(), c.Param("idNumber"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": u})
}

func (s *Server) deleteUser(c *gin.Context) {
	u, err := s.users.Delete(c.Request.Context(), c.Param("idNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "user": u})
}
