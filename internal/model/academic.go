package model

import (
	"strings"
	"time"
)

type AcademicTag string

const (
	Exam       AcademicTag = "exam"
	Assignment AcademicTag = "assignment"
	Reading    AcademicTag = "reading"
	Study      AcademicTag = "study"
	General    AcademicTag = "general"
)

var academicAliases = map[string]AcademicTag{
	"exam":       Exam,
	"prova":      Exam,
	"assignment": Assignment,
	"trabalho":   Assignment,
	"reading":    Reading,
	"leitura":    Reading,
	"study":      Study,
	"estudo":     Study,
}

var academicLabels = map[AcademicTag]string{
	Exam:       "Prova",
	Assignment: "Trabalho",
	Reading:    "Leitura",
	Study:      "Estudo",
	General:    "Geral",
}

// ParseAcademicTag maps stored or submitted tags onto the known set. Unknown
// and empty tags become General with ok=false.
func ParseAcademicTag(s string) (AcademicTag, bool) {
	if t, ok := academicAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, true
	}
	return General, false
}

func (t AcademicTag) Label() string {
	if l, ok := academicLabels[t]; ok {
		return l
	}
	return academicLabels[General]
}

type AcademicItem struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	DocName   string      `json:"doc_name"`
	Summary   *string     `json:"summary"`
	Tag       AcademicTag `json:"tag"`
	CreatedAt time.Time   `json:"created_at"`
}
