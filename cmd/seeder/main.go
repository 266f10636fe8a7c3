package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"attendance-monitor/internal/shared"
)

// Default development accounts and roster
const (
	DefaultProfessorName     = "Dr. Jane Cruz"
	DefaultProfessorUsername = "jcruz"
	DefaultProfessorEmail    = "jcruz@example.com"
	CommonPassword           = "password"

	DemoSection = "BSIT-2A"
	DemoSubject = "IPT102"
)

// StudentSeed holds one demo roster entry
type StudentSeed struct {
	StudentNumber string
	LastName      string
	FirstName     string
	MiddleName    string
}

func main() {
	log.Println("Starting Database Seeder...")

	if err := shared.LoadEnv(".env"); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := shared.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer shared.DisconnectMongoDB(client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cols := shared.NewCollections(db)

	// --- 1. Seed Professor ---
	seedProfessor(ctx, cols.Professors, cfg.Security.BCryptCost)

	// --- 2. Seed Demo Roster ---
	seedStudents(ctx, cols.Students)

	// --- 3. Seed Demo Schedule ---
	seedSchedule(ctx, cols.Schedules)

	log.Println("All data seeding completed successfully.")
}

func seedProfessor(ctx context.Context, professors *mongo.Collection, bcryptCost int) {
	log.Println("--- Seeding Professor ---")

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(CommonPassword), bcryptCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}

	professor := shared.Professor{
		Name:         DefaultProfessorName,
		Username:     DefaultProfessorUsername,
		PasswordHash: string(hashedBytes),
		Email:        DefaultProfessorEmail,
		Role:         shared.RoleProfessor,
		CreatedAt:    time.Now().UTC(),
	}

	filter := bson.M{"username": professor.Username}
	update := bson.M{"$set": professor}
	opts := options.Update().SetUpsert(true)

	if _, err := professors.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Fatalf("Error seeding professor %s: %v", professor.Username, err)
	}
	log.Printf("Seeded Professor: %s (username: %s)", professor.Name, professor.Username)
}

func seedStudents(ctx context.Context, students *mongo.Collection) {
	log.Println("--- Seeding Demo Roster ---")

	seeds := []StudentSeed{
		{"2021-00001", "Dela Cruz", "Juan", "Reyes"},
		{"2021-00002", "Santos", "Maria", ""},
		{"2021-00003", "Garcia", "Pedro", "Lopez"},
		{"2021-00004", "Reyes", "Ana", "Torres"},
		{"2021-00005", "Mendoza", "Jose", ""},
	}

	for _, s := range seeds {
		student := shared.Student{
			StudentNumber: s.StudentNumber,
			FirstName:     s.FirstName,
			MiddleName:    s.MiddleName,
			LastName:      s.LastName,
			Section:       DemoSection,
			CreatedAt:     time.Now().UTC(),
		}

		filter := bson.M{"studentNumber": student.StudentNumber}
		update := bson.M{"$set": student}
		opts := options.Update().SetUpsert(true)

		if _, err := students.UpdateOne(ctx, filter, update, opts); err != nil {
			log.Fatalf("Error seeding student %s: %v", student.StudentNumber, err)
		}
		log.Printf("Seeded Student: %s %s (%s)", student.FirstName, student.LastName, student.StudentNumber)
	}
}

func seedSchedule(ctx context.Context, schedules *mongo.Collection) {
	log.Println("--- Seeding Demo Schedule ---")

	schedule := shared.ClassSchedule{
		Day:               "Monday",
		Time:              "07:00 AM - 08:30 AM",
		Section:           DemoSection,
		RoomNumber:        "301",
		Subject:           DemoSubject,
		ProfessorUsername: DefaultProfessorUsername,
		CreatedAt:         time.Now().UTC(),
	}

	filter := bson.M{
		"section":           schedule.Section,
		"subject":           schedule.Subject,
		"day":               schedule.Day,
		"professorUsername": schedule.ProfessorUsername,
	}
	update := bson.M{"$set": schedule}
	opts := options.Update().SetUpsert(true)

	if _, err := schedules.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Fatalf("Error seeding schedule: %v", err)
	}
	log.Printf("Seeded Schedule: %s %s %s (%s)", schedule.Subject, schedule.Day, schedule.Time, schedule.Section)
}
