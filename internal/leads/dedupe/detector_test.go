package dedupe

import (
	"context"
	"errors"
	"testing"

	dirrepo "edulead_backend/internal/directory/repository"

	"github.com/google/uuid"
)

type fakeDirectory struct {
	courses  map[string]dirrepo.Course
	branches map[string]dirrepo.Branch
	students map[string]dirrepo.Student
	err      error
}

func (f *fakeDirectory) GetCourseByName(_ context.Context, name string) (dirrepo.Course, error) {
	if f.err != nil {
		return dirrepo.Course{}, f.err
	}
	c, ok := f.courses[name]
	if !ok {
		return dirrepo.Course{}, dirrepo.ErrNotFound
	}
	return c, nil
}

func (f *fakeDirectory) GetBranchByName(_ context.Context, name string) (dirrepo.Branch, error) {
	b, ok := f.branches[name]
	if !ok {
		return dirrepo.Branch{}, dirrepo.ErrNotFound
	}
	return b, nil
}

func (f *fakeDirectory) FindStudentByNameAndContact(_ context.Context, name, contactNo string) (dirrepo.Student, error) {
	s, ok := f.students[name+"|"+contactNo]
	if !ok {
		return dirrepo.Student{}, dirrepo.ErrNotFound
	}
	return s, nil
}

type fakeLeadReader struct {
	exists bool
	err    error
	triple [3]uuid.UUID
}

func (f *fakeLeadReader) ExistsByTriple(_ context.Context, courseID, branchID, studentID uuid.UUID) (bool, error) {
	f.triple = [3]uuid.UUID{courseID, branchID, studentID}
	return f.exists, f.err
}

func populatedDirectory() (*fakeDirectory, dirrepo.Course, dirrepo.Branch, dirrepo.Student) {
	course := dirrepo.Course{ID: uuid.New(), Name: "Software Engineering"}
	branch := dirrepo.Branch{ID: uuid.New(), Name: "Colombo"}
	student := dirrepo.Student{ID: uuid.New(), Name: "Nimal Perera", ContactNo: "+94771234567"}
	dir := &fakeDirectory{
		courses:  map[string]dirrepo.Course{course.Name: course},
		branches: map[string]dirrepo.Branch{branch.Name: branch},
		students: map[string]dirrepo.Student{student.Name + "|" + student.ContactNo: student},
	}
	return dir, course, branch, student
}

func TestCheckDuplicate(t *testing.T) {
	dir, course, branch, student := populatedDirectory()
	leads := &fakeLeadReader{exists: true}
	d := New(dir, leads)

	result, err := d.Check(context.Background(), course.Name, branch.Name, student.Name, student.ContactNo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Duplicate {
		t.Fatalf("expected duplicate")
	}
	if result.Incomplete || result.Message != "" {
		t.Fatalf("unexpected incomplete flag or message: %+v", result)
	}
	if leads.triple != [3]uuid.UUID{course.ID, branch.ID, student.ID} {
		t.Fatalf("checked wrong triple: %v", leads.triple)
	}
}

func TestCheckNotDuplicate(t *testing.T) {
	dir, course, branch, student := populatedDirectory()
	d := New(dir, &fakeLeadReader{exists: false})

	result, err := d.Check(context.Background(), course.Name, branch.Name, student.Name, student.ContactNo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Duplicate || result.Incomplete {
		t.Fatalf("expected clean not-duplicate, got %+v", result)
	}
}

func TestCheckFailsOpenOnMissingReference(t *testing.T) {
	dir, course, branch, student := populatedDirectory()
	d := New(dir, &fakeLeadReader{exists: true})

	cases := []struct {
		name                                           string
		courseName, branchName, studentName, contactNo string
	}{
		{"unknown course", "Unknown", branch.Name, student.Name, student.ContactNo},
		{"unknown branch", course.Name, "Unknown", student.Name, student.ContactNo},
		{"unknown student", course.Name, branch.Name, "Unknown", student.ContactNo},
		{"wrong contact", course.Name, branch.Name, student.Name, "+94770000000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := d.Check(context.Background(), tc.courseName, tc.branchName, tc.studentName, tc.contactNo)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Duplicate {
				t.Fatalf("expected fail-open not-duplicate")
			}
			if !result.Incomplete {
				t.Fatalf("expected incomplete flag")
			}
			if result.Message != IncompleteMessage {
				t.Fatalf("expected message %q, got %q", IncompleteMessage, result.Message)
			}
		})
	}
}

func TestCheckPropagatesPersistenceError(t *testing.T) {
	wantErr := errors.New("connection reset")
	dir, _, _, _ := populatedDirectory()
	dir.err = wantErr
	d := New(dir, &fakeLeadReader{})

	_, err := d.Check(context.Background(), "any", "any", "any", "any")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestCheckPropagatesTripleLookupError(t *testing.T) {
	wantErr := errors.New("query timeout")
	dir, course, branch, student := populatedDirectory()
	d := New(dir, &fakeLeadReader{err: wantErr})

	_, err := d.Check(context.Background(), course.Name, branch.Name, student.Name, student.ContactNo)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}
