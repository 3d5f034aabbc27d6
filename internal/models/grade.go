package models

import "accessibility.antwerp.org/internal/scoring"

// GradeModel is the payload of the grade endpoint: the discrete-bucket
// alternate scoring policy.
type GradeModel struct {
	BusScore     int         `json:"busScore"`
	TramScore    int         `json:"tramScore"`
	VeloScore    int         `json:"velobikeScore"`
	OverallScore float64     `json:"overallScore"`
	OverallGrade string      `json:"overallGrade"`
	Nearby       []NodeModel `json:"nearbyTransport"`
}

// NewGradeModel converts a grade result relative to the query point.
func NewGradeModel(result scoring.GradeResult, queryLat, queryLon float64) GradeModel {
	return GradeModel{
		BusScore:     result.BusScore,
		TramScore:    result.TramScore,
		VeloScore:    result.VeloScore,
		OverallScore: result.OverallScore,
		OverallGrade: result.OverallGrade,
		Nearby:       NewNodeModels(result.Nearby, queryLat, queryLon),
	}
}
