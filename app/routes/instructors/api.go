package instructors

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

type instructorRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	Rating        string `json:"rating"`
	LicenceNumber string `json:"licence_number"`
	IsActive      *bool  `json:"is_active"`
}

func GetInstructorsAPI(c *fiber.Ctx, db *sql.DB) error {
	list, err := database.GetInstructors(db, c.Query("active") == "true")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch instructors")
	}
	return c.JSON(fiber.Map{"success": true, "instructors": list})
}

func GetInstructorByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	instructor, err := database.GetInstructorByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Instructor not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch instructor")
	}
	return c.JSON(fiber.Map{"success": true, "instructor": instructor})
}

// CreateInstructorAPI creates the user account and the instructor record.
func CreateInstructorAPI(c *fiber.Ctx, db *sql.DB) error {
	var req instructorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email, password, first_name and last_name are required")
	}

	user := &models.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  true,
	}
	instructor := &models.Instructor{
		Rating:        req.Rating,
		LicenceNumber: req.LicenceNumber,
		IsActive:      true,
	}
	if req.IsActive != nil {
		instructor.IsActive = *req.IsActive
	}
	if err := database.CreateInstructor(db, instructor, user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create instructor")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "instructor": instructor})
}

func UpdateInstructorAPI(c *fiber.Ctx, db *sql.DB) error {
	var req instructorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	instructor := &models.Instructor{
		ID:            c.Params("id"),
		Rating:        req.Rating,
		LicenceNumber: req.LicenceNumber,
		IsActive:      true,
	}
	if req.IsActive != nil {
		instructor.IsActive = *req.IsActive
	}
	if err := database.UpdateInstructor(db, instructor); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Instructor not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update instructor")
	}
	return c.JSON(fiber.Map{"success": true, "instructor": instructor})
}

func DeleteInstructorAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteInstructor(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Instructor not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete instructor")
	}
	return c.JSON(fiber.Map{"success": true})
}
