package logger

import (
	"log"
	"os"
)

var (
	// InfoLogger oddiy xabarlar uchun
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)

	// ErrorLogger xatolar uchun
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// Init loggerlarni ishga tushirish
func Init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}
