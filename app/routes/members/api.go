package members

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/database"
	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

type memberRequest struct {
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Phone         string  `json:"phone"`
	Status        string  `json:"status"`
	LicenceNumber string  `json:"licence_number"`
	MedicalExpiry *string `json:"medical_expiry"` // YYYY-MM-DD
	BFRExpiry     *string `json:"bfr_expiry"`
}

func parseDate(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+field+", expected YYYY-MM-DD")
	}
	return &t, nil
}

func GetMembersAPI(c *fiber.Ctx, db *sql.DB) error {
	list, err := database.GetMembers(db, c.Query("status"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch members")
	}
	return c.JSON(fiber.Map{"success": true, "members": list})
}

func GetMemberByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	member, err := database.GetMemberByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch member")
	}
	return c.JSON(fiber.Map{"success": true, "member": member})
}

// CreateMemberAPI creates the user account and the membership record.
func CreateMemberAPI(c *fiber.Ctx, db *sql.DB) error {
	var req memberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email, password, first_name and last_name are required")
	}

	medical, err := parseDate(req.MedicalExpiry, "medical_expiry")
	if err != nil {
		return err
	}
	bfr, err := parseDate(req.BFRExpiry, "bfr_expiry")
	if err != nil {
		return err
	}

	status := models.MembershipStatus(req.Status)
	if status == "" {
		status = models.MembershipActive
	}

	user := &models.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  true,
	}
	member := &models.Member{
		Status:        status,
		LicenceNumber: req.LicenceNumber,
		MedicalExpiry: medical,
		BFRExpiry:     bfr,
	}
	if err := database.CreateMember(db, member, user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create member")
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "member": member})
}

func UpdateMemberAPI(c *fiber.Ctx, db *sql.DB) error {
	var req memberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	medical, err := parseDate(req.MedicalExpiry, "medical_expiry")
	if err != nil {
		return err
	}
	bfr, err := parseDate(req.BFRExpiry, "bfr_expiry")
	if err != nil {
		return err
	}

	member := &models.Member{
		ID:            c.Params("id"),
		Status:        models.MembershipStatus(req.Status),
		LicenceNumber: req.LicenceNumber,
		MedicalExpiry: medical,
		BFRExpiry:     bfr,
	}
	if err := database.UpdateMember(db, member); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update member")
	}
	return c.JSON(fiber.Map{"success": true, "member": member})
}

func DeleteMemberAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteMember(db, c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete member")
	}
	return c.JSON(fiber.Map{"success": true})
}
