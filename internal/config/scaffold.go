package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const starterConfig = `blog_title = "My Blog"
author = "Anonymous"
base_url = ""
enable_rss = true
`

const starterPost = `---
title: Hello World
date: %s
tags:
  - meta
---
Welcome to your new blog. Edit this post under posts/ and run
` + "`pageturtle build`" + ` to publish it.
`

// Scaffold creates a minimal blog at dir: a configuration file plus one
// starter post under posts/. It refuses to touch an existing non-directory
// target, and an existing non-empty directory unless force is set.
func Scaffold(dir, starterDate string, force bool) error {
	if st, err := os.Stat(dir); err == nil {
		if !st.IsDir() {
			return fmt.Errorf("init target %s exists and is not a directory", dir)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read init target %s: %w", dir, err)
		}
		if len(entries) > 0 && !force {
			return fmt.Errorf("init target %s is not empty (use --force to scaffold anyway)", dir)
		}
	}

	postsDir := filepath.Join(dir, "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		return fmt.Errorf("create posts directory: %w", err)
	}
	cfgPath := filepath.Join(dir, DefaultFilename)
	if err := os.WriteFile(cfgPath, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfgPath, err)
	}
	postPath := filepath.Join(postsDir, "hello-world.md")
	post := fmt.Sprintf(starterPost, starterDate)
	if err := os.WriteFile(postPath, []byte(post), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", postPath, err)
	}
	return nil
}
