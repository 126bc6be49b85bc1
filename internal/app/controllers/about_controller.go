package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/yatube/internal/web"
)

// AboutController serves the static about pages
type AboutController struct{}

// NewAboutController creates a new AboutController
func NewAboutController() *AboutController {
	return &AboutController{}
}

// Author renders the about-the-author page
func (ac *AboutController) Author(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageAuthor, web.Data(c, nil))
}

// Tech renders the technologies page
func (ac *AboutController) Tech(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageTech, web.Data(c, nil))
}
