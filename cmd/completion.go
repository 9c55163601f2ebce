package cmd

import (
	"github.com/etnz/capgains/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	files := predict.Files("*.jsonl")
	currencies := predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"}
	topics, _ := docs.GetAllTopics()
	topics = append(topics, "*")

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"rate":      predict.Something,
			"exemption": predict.Something,
			"currency":  currencies,
			"v":         predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"resolve": {
				Flags: map[string]complete.Predictor{
					"i":    files,
					"o":    files,
					"path": predict.Something,
					"j":    predict.Something,
				},
			},
			"report": {
				Flags: map[string]complete.Predictor{
					"i":    files,
					"path": predict.Something,
					"c":    currencies,
					"raw":  predict.Nothing,
				},
			},
			"topic": {
				Flags: map[string]complete.Predictor{"raw": predict.Nothing},
				Args:  predict.Set(topics),
			},
		},
	}
}
