// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package metrics registers the Prometheus instrumentation of the
// assembler. The counters are registered on the default registry and
// exposed by the CLI when --metrics-addr is set.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PartCacheHits counts part reads served from the read-through cache.
	PartCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ymlforge_part_cache_hits_total",
		Help: "Part reads served from the read-through cache.",
	})

	// PartCacheMisses counts part reads that went to the backing store.
	PartCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ymlforge_part_cache_misses_total",
		Help: "Part reads that parsed the backing file.",
	})

	// Assemblies counts entries that completed the pipeline.
	Assemblies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ymlforge_assemblies_total",
		Help: "Entries assembled successfully.",
	})

	// AssemblyFailures counts entries that failed in any stage.
	AssemblyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ymlforge_assembly_failures_total",
		Help: "Entries that failed to assemble.",
	})
)
