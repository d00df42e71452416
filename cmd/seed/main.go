package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formflow/internal/model"
	"formflow/internal/schema"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB_NAME")
	if dbName == "" {
		dbName = "formflow"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	formColl := db.Collection("forms")

	// Organizer ID observed in logs
	organizerID := "org_7f41aa02"

	maxSessions := 3.0
	sch := model.FormSchema{
		Program:       "summer-camp-2026",
		Title:         "Summer Camp 2026 Registration",
		Description:   "Register your children for the 2026 summer camp season.",
		LayoutColumns: 2,
		Steps: []model.FormStep{
			{
				Key:   "guardian",
				Title: "Guardian Details",
				Fields: []model.FormField{
					{Name: "guardian-name", Label: "Full Name", Type: model.FieldTypeText, Required: true},
					{Name: "guardian-email", Label: "Email", Type: model.FieldTypeEmail, Required: true},
					{Name: "guardian-phone", Label: "Phone", Type: model.FieldTypeTel},
					{
						Name: "heard-about-us", Label: "How did you hear about us?", Type: model.FieldTypeSelect,
						Options: []string{"Friend", "School", "Social media", "Other"},
					},
					{
						Name: "heard-about-us-other", Label: "Tell us more", Type: model.FieldTypeText,
						Conditions: &model.ConditionGroup{
							Mode: model.GroupModeAll,
							Rules: []model.ConditionRule{
								{Field: "heard-about-us", Op: model.OpEquals, Value: "Other"},
							},
						},
					},
				},
			},
			{
				Key:            "camper",
				Title:          "Camper Details",
				PerParticipant: true,
				Fields: []model.FormField{
					{Name: "camper-age", Label: "Age", Type: model.FieldTypeNumber, Required: true},
					{
						Name: "sessions", Label: "Number of Sessions", Type: model.FieldTypeNumber,
						Required: true, MaxValue: &maxSessions,
					},
					{
						Name: "has-allergies", Label: "Any allergies?", Type: model.FieldTypeRadio,
						Options: []string{"yes", "no"},
					},
					{
						Name: "allergy-details", Label: "Allergy Details", Type: model.FieldTypeTextarea,
						Required: true,
						Conditions: &model.ConditionGroup{
							Mode: model.GroupModeAll,
							Rules: []model.ConditionRule{
								{Field: "has-allergies", Op: model.OpEquals, Value: "yes"},
							},
						},
					},
				},
			},
			{
				Key:            "teen-waiver",
				Title:          "Teen Activity Waiver",
				PerParticipant: true,
				Conditions: &model.ConditionGroup{
					Mode: model.GroupModeAll,
					Rules: []model.ConditionRule{
						{Field: "camper-age", Op: model.OpGreaterOrEq, Value: "13"},
					},
				},
				Fields: []model.FormField{
					{Name: "waiver-signed", Label: "Waiver Signed", Type: model.FieldTypeCheckbox, Required: true},
					{
						Name: "waiver-upload", Label: "Signed Waiver", Type: model.FieldTypeFile,
						AllowedFileTypes: []string{"pdf"},
					},
				},
			},
		},
	}

	normalized := schema.Normalize(sch)
	form := model.Form{
		OrganizerID: organizerID,
		Payload:     *schema.BuildPayload(&normalized),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	result, err := formColl.InsertOne(ctx, form)
	if err != nil {
		log.Fatalf("Failed to insert form: %v", err)
	}

	fmt.Printf("Successfully created form '%s' (%v) for organizer '%s'\n", sch.Title, result.InsertedID, organizerID)
}
