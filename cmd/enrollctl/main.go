package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/internal/view"
	"github.com/noah-isme/enrollment-api/pkg/client"
)

const usage = `usage: enrollctl [-base URL] [-legacy] {students|subjects|enrollments} {list|add|edit|delete} [flags]

  students    add|edit  -id N -fullname S -email S -age N
  subjects    add|edit  -id N -name S
  enrollments add|edit  -id N -student N -subject N -approved
  any         delete    -id N
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err) //nolint:errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	global := flag.NewFlagSet("enrollctl", flag.ContinueOnError)
	global.SetOutput(out)
	base := global.String("base", envOr("ENROLLMENT_API_URL", "http://localhost:8080/api/v1"), "API base URL")
	legacy := global.Bool("legacy", false, "talk to the /server.php?module= endpoint under -base")
	global.Usage = func() { fmt.Fprint(out, usage) }
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) < 2 {
		global.Usage()
		return errors.New("missing entity or action")
	}
	entity, action, flags := rest[0], rest[1], rest[2:]

	apis := newAPIs(*base, *legacy)
	confirm := view.PromptConfirm(in, out)

	var (
		msg string
		err error
	)
	switch entity {
	case "students":
		msg, err = runStudents(ctx, view.NewStudentController(apis.students, out, confirm), action, flags)
	case "subjects":
		msg, err = runSubjects(ctx, view.NewSubjectController(apis.subjects, out, confirm), action, flags)
	case "enrollments":
		ctrl := view.NewEnrollmentController(apis.enrollments, apis.students, apis.subjects, out, confirm)
		msg, err = runEnrollments(ctx, ctrl, action, flags)
	default:
		global.Usage()
		return fmt.Errorf("unknown entity %q", entity)
	}
	if err != nil {
		return err
	}
	if msg != "" {
		color.New(color.FgGreen).Fprintln(out, msg) //nolint:errcheck
	}
	return nil
}

type apiSet struct {
	students    *client.Resource[models.Student]
	subjects    *client.Resource[models.Subject]
	enrollments *client.Resource[models.EnrollmentDetail]
}

func newAPIs(base string, legacy bool) apiSet {
	opt := func(module string) []client.Option {
		if legacy {
			return []client.Option{client.WithURL(client.LegacyURL(base, module))}
		}
		return nil
	}
	return apiSet{
		students:    client.New[models.Student](base, "students", opt("students")...),
		subjects:    client.New[models.Subject](base, "subjects", opt("subjects")...),
		enrollments: client.New[models.EnrollmentDetail](base, "students_subjects", opt("students_subjects")...),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// set reports which flags were given explicitly, so edit only overwrites those.
func set(fs *flag.FlagSet) map[string]bool {
	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	return seen
}

func requireID(id int64, action string) error {
	if action != "add" && id <= 0 {
		return fmt.Errorf("%s requires -id", action)
	}
	return nil
}

func runStudents(ctx context.Context, ctrl *view.StudentController, action string, args []string) (string, error) {
	fs := flag.NewFlagSet("students "+action, flag.ContinueOnError)
	id := fs.Int64("id", 0, "student id")
	fullName := fs.String("fullname", "", "full name")
	email := fs.String("email", "", "email")
	age := fs.Int("age", 0, "age")
	if err := fs.Parse(args); err != nil {
		return "", err
	}

	switch action {
	case "list":
		return "", ctrl.Load(ctx)
	case "delete":
		if err := requireID(*id, action); err != nil {
			return "", err
		}
		return ctrl.Delete(ctx, *id)
	case "add", "edit":
		if err := requireID(*id, action); err != nil {
			return "", err
		}
		if action == "edit" {
			if err := loadAndEdit(ctx, ctrl.Load, ctrl.Edit, *id); err != nil {
				return "", err
			}
		}
		given := set(fs)
		if given["fullname"] || action == "add" {
			ctrl.Form.FullName = *fullName
		}
		if given["email"] || action == "add" {
			ctrl.Form.Email = *email
		}
		if given["age"] || action == "add" {
			ctrl.Form.Age = strconv.Itoa(*age)
		}
		return ctrl.Submit(ctx)
	}
	return "", fmt.Errorf("unknown action %q", action)
}

func runSubjects(ctx context.Context, ctrl *view.SubjectController, action string, args []string) (string, error) {
	fs := flag.NewFlagSet("subjects "+action, flag.ContinueOnError)
	id := fs.Int64("id", 0, "subject id")
	name := fs.String("name", "", "subject name")
	if err := fs.Parse(args); err != nil {
		return "", err
	}

	switch action {
	case "list":
		return "", ctrl.Load(ctx)
	case "delete":
		if err := requireID(*id, action); err != nil {
			return "", err
		}
		return ctrl.Delete(ctx, *id)
	case "add", "edit":
		if err := requireID(*id, action); err != nil {
			return "", err
		}
		if action == "edit" {
			if err := loadAndEdit(ctx, ctrl.Load, ctrl.Edit, *id); err != nil {
				return "", err
			}
		}
		if set(fs)["name"] || action == "add" {
			ctrl.Form.Name = *name
		}
		return ctrl.Submit(ctx)
	}
	return "", fmt.Errorf("unknown action %q", action)
}

func runEnrollments(ctx context.Context, ctrl *view.EnrollmentController, action string, args []string) (string, error) {
	fs := flag.NewFlagSet("enrollments "+action, flag.ContinueOnError)
	id := fs.Int64("id", 0, "enrollment id")
	student := fs.Int64("student", 0, "student id")
	subject := fs.Int64("subject", 0, "subject id")
	approved := fs.Bool("approved", false, "mark as approved")
	if err := fs.Parse(args); err != nil {
		return "", err
	}

	switch action {
	case "list":
		return "", ctrl.Load(ctx)
	case "delete":
		if err := requireID(*id, action); err != nil {
			return "", err
		}
		return ctrl.Delete(ctx, *id)
	case "add", "edit":
		if err := requireID(*id, action); err != nil {
			return "", err
		}
		if err := ctrl.LoadOptions(ctx); err != nil {
			return "", err
		}
		if action == "edit" {
			if err := loadAndEdit(ctx, ctrl.Load, ctrl.Edit, *id); err != nil {
				return "", err
			}
		}
		given := set(fs)
		if given["student"] || action == "add" {
			if !hasOption(ctrl.StudentOptions, *student) {
				return "", fmt.Errorf("unknown student %d", *student)
			}
			ctrl.Form.StudentID = strconv.FormatInt(*student, 10)
		}
		if given["subject"] || action == "add" {
			if !hasOption(ctrl.SubjectOptions, *subject) {
				return "", fmt.Errorf("unknown subject %d", *subject)
			}
			ctrl.Form.SubjectID = strconv.FormatInt(*subject, 10)
		}
		if given["approved"] || action == "add" {
			ctrl.Form.Approved = *approved
		}
		return ctrl.Submit(ctx)
	}
	return "", fmt.Errorf("unknown action %q", action)
}

func loadAndEdit(ctx context.Context, load func(context.Context) error, edit func(int64) error, id int64) error {
	if err := load(ctx); err != nil {
		return err
	}
	if err := edit(id); err != nil {
		return fmt.Errorf("id %d: %w", id, err)
	}
	return nil
}

func hasOption(options []view.Option, value int64) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
