//go:build !gosseract
// +build !gosseract

package main

func tesseractBuilt() bool { return false }
