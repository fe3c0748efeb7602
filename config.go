package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SaveDirectory    string
	StorageDirectory string
	StorageLimit     int64
	MaxImageBytes    int64
	LogFile          string

	StrokeColor string
	FillColor   string
	FillEnabled bool
	StrokeWidth float64
	FontSize    float64
	Opacity     float64
}

func defaultConfig() *Config {
	return &Config{
		StorageLimit:  5 << 20,
		MaxImageBytes: defaultMaxImageSize,
		StrokeColor:   defaultStrokeColor,
		FillColor:     defaultFillColor,
		StrokeWidth:   defaultStrokeWidth,
		FontSize:      defaultFontSize,
		Opacity:       defaultOpacity,
	}
}

func loadConfig() *Config {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}
	config.StorageDirectory = filepath.Join(homeDir, ".inkplane", "projects")

	file, err := os.Open(filepath.Join(homeDir, ".inkplanerc"))
	if err != nil {
		return config
	}
	defer file.Close()

	parseConfig(config, bufio.NewScanner(file), homeDir)
	return config
}

func parseConfig(config *Config, scanner *bufio.Scanner, homeDir string) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "storage_directory", "storagedir":
			config.StorageDirectory = expandPath(value, homeDir)
		case "log_file", "logfile":
			config.LogFile = expandPath(value, homeDir)
		case "storage_limit":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil && n >= 0 {
				config.StorageLimit = n
			}
		case "max_image_bytes":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
				config.MaxImageBytes = n
			}
		case "stroke_color":
			if strings.HasPrefix(value, "#") {
				config.StrokeColor = value
			}
		case "fill_color":
			if strings.HasPrefix(value, "#") {
				config.FillColor = value
			}
		case "fill_enabled":
			config.FillEnabled = strings.ToLower(value) == "true"
		case "stroke_width":
			if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
				config.StrokeWidth = f
			}
		case "font_size":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				config.FontSize = clamp(f, minFontSize, maxFontSize)
			}
		case "opacity":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				config.Opacity = clamp(f, 0, 100)
			}
		}
	}
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
