package entity

import "testing"

func TestProfileExperienceNewestFirst(t *testing.T) {
	p := &Profile{}
	older := p.AddExperience(Experience{Title: "Junior Dev", Company: "Acme", From: "2018-01-01"})
	newer := p.AddExperience(Experience{Title: "Senior Dev", Company: "Acme", From: "2021-01-01"})

	if older.ID == "" || newer.ID == "" {
		t.Fatal("ids not assigned")
	}
	if p.Experience[0].ID != newer.ID || p.Experience[1].ID != older.ID {
		t.Errorf("experience order wrong: %v", p.Experience)
	}
}

func TestProfileRemoveExperience(t *testing.T) {
	p := &Profile{}
	keep := p.AddExperience(Experience{Title: "A", Company: "X", From: "2018-01-01"})
	drop := p.AddExperience(Experience{Title: "B", Company: "Y", From: "2020-01-01"})

	if !p.RemoveExperience(drop.ID) {
		t.Fatal("expected removal")
	}
	if len(p.Experience) != 1 || p.Experience[0].ID != keep.ID {
		t.Errorf("wrong entry removed: %v", p.Experience)
	}
	if p.RemoveExperience("no-such-id") {
		t.Error("miss should report false")
	}
	if len(p.Experience) != 1 {
		t.Errorf("miss changed the collection: %v", p.Experience)
	}
}

func TestProfileEducation(t *testing.T) {
	p := &Profile{}
	edu := p.AddEducation(Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01"})
	if edu.ID == "" || len(p.Education) != 1 {
		t.Fatalf("education not added: %v", p.Education)
	}
	if !p.RemoveEducation(edu.ID) {
		t.Fatal("expected removal")
	}
	if len(p.Education) != 0 {
		t.Errorf("education not removed: %v", p.Education)
	}
}
