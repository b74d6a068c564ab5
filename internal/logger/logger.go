// Package logger centralise les logs applicatifs avec des niveaux simples.
package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

func init() {
	Init(os.Stdout)
}

// Init (re)configure les quatre niveaux sur la sortie donnée.
// Les tests peuvent passer io.Discard pour un run silencieux.
func Init(out io.Writer) {
	Info = log.New(out, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(out, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(out, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(out, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// SetEnv coupe les logs Debug en production.
func SetEnv(env string) {
	if env == "production" {
		Debug.SetOutput(io.Discard)
	}
}
