package dto

import (
	"mime/multipart"
	"strconv"
	"strings"
)

// PostForm is the create/edit post form. Group holds a group id or is empty.
type PostForm struct {
	Text       string `form:"text" validate:"required"`
	Group      string `form:"group" validate:"omitempty,numeric"`
	// ImageClear is the "image-clear" checkbox; browsers post "on", so the
	// controller sets it by hand
	ImageClear bool   `form:"-"`

	Image *multipart.FileHeader `form:"-"`
}

// Normalize trims surrounding whitespace the way form fields are cleaned
func (f *PostForm) Normalize() {
	f.Text = strings.TrimSpace(f.Text)
	f.Group = strings.TrimSpace(f.Group)
}

// GroupID parses the selected group; nil means no group
func (f *PostForm) GroupID() (*int64, error) {
	if f.Group == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(f.Group, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// CommentForm is the comment form on the post detail page
type CommentForm struct {
	Text string `form:"text" validate:"required,max=200"`
}

// Normalize trims surrounding whitespace
func (f *CommentForm) Normalize() {
	f.Text = strings.TrimSpace(f.Text)
}

// SignupForm registers a new account
type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

// Normalize trims the name fields; passwords are kept verbatim
func (f *SignupForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
}

// LoginForm authenticates an existing account
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Normalize trims the username
func (f *LoginForm) Normalize() {
	f.Username = strings.TrimSpace(f.Username)
}
