// Package domain holds the plain data types shared across the fusemcp
// core and its transport adapters: tool descriptors, call requests,
// generated fragments/programs, and the classified error taxonomy.
package domain
