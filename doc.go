// Package main provides the entry point for the guestbook web service.
// It initializes and runs a web server using the Fiber framework that lets
// visitors leave entries, optionally held for moderation, and gives a single
// administrator a small panel to approve or delete entries and edit the site
// settings. The application uses gorm over SQLite for persistence and ships
// an embeddable widget script for third-party pages.
package main
