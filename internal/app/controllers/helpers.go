// Package controllers handles HTTP request handling
package controllers

import (
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/yatube/internal/app/models"
)

func postURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

// idParam parses the :id path parameter
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// uploadedFile returns the file posted under field, or nil when none was sent
func uploadedFile(c *gin.Context, field string) *multipart.FileHeader {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil || fileHeader.Filename == "" {
		return nil
	}
	return fileHeader
}

func groupIDString(post *models.Post) string {
	if post.GroupID == nil {
		return ""
	}
	return strconv.FormatInt(*post.GroupID, 10)
}
