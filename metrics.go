package main

import (
	"fmt"
	"time"
)

type updateMetrics struct {
	inserts, deletes int
	constructionTime time.Duration
	updateTime       time.Duration
	verifyTime       time.Duration
}

func (m updateMetrics) report() {
	if !opts.Metrics() {
		return
	}
	fmt.Printf("construction: %s\n", m.constructionTime)
	fmt.Printf("%d insertions, %d deletions in %s\n", m.inserts, m.deletes, m.updateTime)
	fmt.Printf("verification: %s\n", m.verifyTime)
}
