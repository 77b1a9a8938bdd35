package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"phonebook/internal/service"
)

// TotalCountHeader carries the number of contacts matching a list query before paging.
const TotalCountHeader = "X-Total-Count"

// parsePaging reads a non-negative integer query parameter. Absent means 0.
func parsePaging(c *fiber.Ctx, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ListContacts godoc
// @Summary     List contacts
// @Description Returns contacts whose name contains q (case-insensitive). limit=0 returns all.
// @Tags        contacts
// @Produce     json
// @Param       q      query    string false "name filter"
// @Param       limit  query    int    false "page size"
// @Param       offset query    int    false "items to skip"
// @Success     200    {array}  model.Contact
// @Header      200    {integer} X-Total-Count "matching contacts before paging"
// @Failure     400    {object} errorPayload
// @Router      /contacts [get]
func ListContacts(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, ok := parsePaging(c, "limit")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, ok := parsePaging(c, "offset")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), service.ListOptions{
			Query:  c.Query("q"),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(TotalCountHeader, strconv.Itoa(res.Total))
		return c.JSON(res.Items)
	}
}

// GetContact godoc
// @Summary  Get a contact
// @Tags     contacts
// @Produce  json
// @Param    id  path     string true "contact id"
// @Success  200 {object} model.Contact
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /contacts/{id} [get]
func GetContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contact, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(contact)
	}
}

// CreateContact godoc
// @Summary  Create a contact
// @Tags     contacts
// @Accept   json
// @Produce  json
// @Param    body body     contactRequest true "new contact"
// @Success  201  {object} model.Contact
// @Failure  400  {object} errorPayload "missing field or name already exists"
// @Router   /contacts [post]
func CreateContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req contactRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		contact, err := svc.Create(c.UserContext(), req.Name, req.Number)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Location("/contacts/" + contact.ID)
		return c.Status(fiber.StatusCreated).JSON(contact)
	}
}

// UpsertContact godoc
// @Summary     Create or update a contact by name
// @Description Updates the number of the contact with this exact name, or creates it.
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Param       body body     contactRequest true "contact"
// @Success     200  {object} model.Contact "updated"
// @Success     201  {object} model.Contact "created"
// @Failure     400  {object} errorPayload
// @Router      /contacts/upsert [post]
func UpsertContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req contactRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		contact, created, err := svc.UpsertByName(c.UserContext(), req.Name, req.Number)
		if err != nil {
			return writeServiceError(c, err)
		}
		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(contact)
	}
}

// UpdateContact godoc
// @Summary  Replace a contact's number
// @Tags     contacts
// @Accept   json
// @Produce  json
// @Param    id   path     string        true "contact id"
// @Param    body body     updateRequest true "new number, optional new name"
// @Success  200  {object} model.Contact
// @Failure  400  {object} errorPayload
// @Failure  404  {object} errorPayload
// @Router   /contacts/{id} [put]
func UpdateContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		contact, err := svc.Update(c.UserContext(), c.Params("id"), service.UpdateInput{
			Number: req.Number,
			Name:   req.Name,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(contact)
	}
}

// DeleteContact godoc
// @Summary     Delete a contact
// @Description Deleting an unknown id succeeds.
// @Tags        contacts
// @Param       id  path string true "contact id"
// @Success     204
// @Failure     400 {object} errorPayload
// @Router      /contacts/{id} [delete]
func DeleteContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PhonebookInfo godoc
// @Summary     Phonebook summary
// @Description JSON by default; an Accept header preferring text/html gets a short HTML page.
// @Tags        info
// @Produce     json,html
// @Success     200 {object} service.Info
// @Router      /info [get]
func PhonebookInfo(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := svc.Info(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		if c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML {
			c.Type("html")
			return c.SendString("<div>Phonebook has info for " + strconv.Itoa(info.Count) + " people</div>\n" +
				"<div>" + info.Time.Format("Mon Jan 02 2006 15:04:05 GMT-0700 (MST)") + "</div>\n")
		}
		return c.JSON(info)
	}
}
