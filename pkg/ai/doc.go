// Package ai wraps the generative model used for lesson plans, question
// banks and the daily news search, and builds the prompts sent to it.
package ai
