package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/campusgrid/timetable-backend/internal/config"
	"github.com/campusgrid/timetable-backend/internal/database"
	"github.com/campusgrid/timetable-backend/internal/logger"
	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/repository"
	"github.com/campusgrid/timetable-backend/internal/service"
)

// seedEntry references seeded rows by index.
type seedEntry struct {
	day      model.Weekday
	start    string
	end      string
	faculty  int
	subject  int
	room     int
	semester int
	section  string
}

func main() {
	var (
		code string
		year int
	)
	flag.StringVar(&code, "department", "CSE", "Department code to seed")
	flag.IntVar(&year, "year", time.Now().Year(), "Academic year of the seeded entries")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	departmentService := service.NewDepartmentService(repository.NewDepartmentRepository(pool), nil, 0, log)
	facultyService := service.NewFacultyService(repository.NewFacultyRepository(pool), log)
	roomService := service.NewRoomService(repository.NewRoomRepository(pool), log)
	subjectService := service.NewSubjectService(repository.NewSubjectRepository(pool), log)
	timetableService := service.NewTimetableService(repository.NewTimetableRepository(pool), nil, log)

	identity := model.Identity{UserID: "seed", DepartmentCode: &code}
	deptID, err := departmentService.Resolve(ctx, identity)
	if err != nil || deptID == nil {
		log.Fatal().Err(err).Str("department", code).Msg("Failed to resolve department")
	}
	scope := &model.Scope{Identity: identity, DepartmentID: deptID}

	fmt.Printf("=== Seeding department %s (%s) ===\n", code, *deptID)

	professor := "Professor"
	lecturer := "Lecturer"
	facultyReqs := []model.FacultyRequest{
		{Name: "Ada Lovelace", Email: "ada@" + code + ".example.edu", Designation: &professor},
		{Name: "Alan Turing", Email: "alan@" + code + ".example.edu", Designation: &professor},
		{Name: "Grace Hopper", Email: "grace@" + code + ".example.edu", Designation: &lecturer},
	}
	roomReqs := []model.RoomRequest{
		{Name: "R101", Capacity: 60, Type: model.RoomTypeLecture},
		{Name: "L201", Capacity: 30, Type: model.RoomTypeLab},
		{Name: "S301", Capacity: 20, Type: model.RoomTypeSeminar},
	}
	four, three := 4, 3
	subjectReqs := []model.SubjectRequest{
		{Name: "Data Structures", Code: "CS201", Credits: &four},
		{Name: "Operating Systems", Code: "CS301", Credits: &four},
		{Name: "Compiler Design", Code: "CS401", Credits: &three},
	}

	var (
		faculty  []model.Faculty
		rooms    []model.Room
		subjects []model.Subject
	)
	for i := range facultyReqs {
		f, err := facultyService.Create(ctx, scope, &facultyReqs[i])
		if err != nil {
			log.Fatal().Err(err).Str("email", facultyReqs[i].Email).Msg("Failed to create faculty")
		}
		faculty = append(faculty, *f)
	}
	for i := range roomReqs {
		r, err := roomService.Create(ctx, scope, &roomReqs[i])
		if err != nil {
			log.Fatal().Err(err).Str("room", roomReqs[i].Name).Msg("Failed to create room")
		}
		rooms = append(rooms, *r)
	}
	for i := range subjectReqs {
		s, err := subjectService.Create(ctx, scope, &subjectReqs[i])
		if err != nil {
			log.Fatal().Err(err).Str("subject", subjectReqs[i].Code).Msg("Failed to create subject")
		}
		subjects = append(subjects, *s)
	}
	fmt.Printf("Created %d faculty, %d rooms, %d subjects\n", len(faculty), len(rooms), len(subjects))

	entries := []seedEntry{
		{model.Monday, "09:00", "10:00", 0, 0, 0, 3, "A"},
		{model.Monday, "10:00", "11:00", 0, 0, 0, 3, "B"},
		{model.Monday, "09:00", "11:00", 1, 1, 1, 5, "A"},
		{model.Tuesday, "11:00", "12:30", 2, 2, 2, 7, "A"},
		// Same room and overlapping time as the first entry; rejected.
		{model.Monday, "09:30", "10:30", 2, 2, 0, 7, "A"},
	}

	created, rejected := 0, 0
	for _, se := range entries {
		e := &model.TimetableEntry{
			DayOfWeek:    se.day,
			StartTime:    model.MustParseClock(se.start),
			EndTime:      model.MustParseClock(se.end),
			FacultyID:    faculty[se.faculty].ID,
			SubjectID:    subjects[se.subject].ID,
			RoomID:       rooms[se.room].ID,
			Semester:     se.semester,
			Section:      se.section,
			AcademicYear: year,
		}
		if _, err := timetableService.Create(ctx, scope, e); err != nil {
			var conflict *model.ConflictError
			if errors.As(err, &conflict) {
				fmt.Printf("Rejected %s %s-%s: %s\n", se.day, se.start, se.end, conflict.Message())
				rejected++
				continue
			}
			log.Fatal().Err(err).Msg("Failed to create timetable entry")
		}
		created++
	}

	fmt.Printf("\nSeed completed! %d entries created, %d rejected as conflicts.\n", created, rejected)
}
