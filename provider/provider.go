// Package provider defines translation backends for the relay.
package provider

import "github.com/lingobridge/lingobridge"

// Translator is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Translator = lingobridge.Translator

// TranslateRequest is an alias to the main package type.
type TranslateRequest = lingobridge.TranslateRequest
