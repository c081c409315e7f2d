package models

import "time"

// Prediction is a delay forecast for one train.
type Prediction struct {
	TrainID               string    `json:"trainId"`
	PredictedDelayMinutes float64   `json:"predictedDelayMinutes"`
	Confidence            float64   `json:"confidence"`
	HorizonMinutes        int       `json:"horizonMinutes"`
	GeneratedAt           time.Time `json:"generatedAt"`
}
