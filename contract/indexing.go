package contract

// maintaining index keys for querying investments by status

import (
	"encoding/json"
	"fmt"
	"strconv"

	"coopvest_dao/sdk"
)

// chunkCounterKey stores number of chunks for a base index
func chunkCounterKey(base string) string {
	return base + ":chunks"
}

func chunkKey(base string, chunk int) string {
	return base + ":" + strconv.Itoa(chunk)
}

// getChunkCount returns the number of chunks for an index
func getChunkCount(baseKey string) int {
	ptr := sdk.StateGetObject(chunkCounterKey(baseKey))
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.Atoi(*ptr)
	return n
}

func setChunkCount(baseKey string, n int) {
	sdk.StateSetObject(chunkCounterKey(baseKey), strconv.Itoa(n))
}

// addIDToIndex ensures id exists across all chunks (no duplicates).
func addIDToIndex(baseKey string, id uint64) {
	chunks := getChunkCount(baseKey)
	// search existing chunks for duplicates or free space
	for i := 0; i < chunks; i++ {
		key := chunkKey(baseKey, i)
		ptr := sdk.StateGetObject(key)
		var ids []uint64
		if ptr != nil && *ptr != "" {
			if err := json.Unmarshal([]byte(*ptr), &ids); err != nil {
				sdk.Abort(fmt.Sprintf("unmarshal index %s: %v", key, err))
			}
			for _, e := range ids {
				if e == id {
					return // already present
				}
			}
			if len(ids) < maxChunkSize {
				ids = append(ids, id)
				b, err := json.Marshal(ids)
				if err != nil {
					sdk.Abort(fmt.Sprintf("marshal index %s: %v", key, err))
				}
				sdk.StateSetObject(key, string(b))
				return
			}
		}
	}
	// not found / no space -> create new chunk
	key := chunkKey(baseKey, chunks)
	b, err := json.Marshal([]uint64{id})
	if err != nil {
		sdk.Abort(fmt.Sprintf("marshal index %s: %v", key, err))
	}
	sdk.StateSetObject(key, string(b))
	setChunkCount(baseKey, chunks+1)
}

// removeIDFromIndex removes id from whichever chunk it's in.
func removeIDFromIndex(baseKey string, id uint64) {
	chunks := getChunkCount(baseKey)
	for i := 0; i < chunks; i++ {
		key := chunkKey(baseKey, i)
		ptr := sdk.StateGetObject(key)
		if ptr == nil || *ptr == "" {
			continue
		}
		var ids []uint64
		if err := json.Unmarshal([]byte(*ptr), &ids); err != nil {
			sdk.Abort(fmt.Sprintf("unmarshal index %s: %v", key, err))
		}
		newIds := ids[:0]
		found := false
		for _, e := range ids {
			if e == id {
				found = true
				continue
			}
			newIds = append(newIds, e)
		}
		if found {
			b, err := json.Marshal(newIds)
			if err != nil {
				sdk.Abort(fmt.Sprintf("marshal index %s: %v", key, err))
			}
			sdk.StateSetObject(key, string(b))
		}
	}
}

// getIDsFromIndex collects all IDs across all chunks.
func getIDsFromIndex(baseKey string) []uint64 {
	all := []uint64{}
	chunks := getChunkCount(baseKey)
	for i := 0; i < chunks; i++ {
		key := chunkKey(baseKey, i)
		ptr := sdk.StateGetObject(key)
		if ptr == nil || *ptr == "" {
			continue
		}
		var ids []uint64
		if err := json.Unmarshal([]byte(*ptr), &ids); err != nil {
			sdk.Abort(fmt.Sprintf("unmarshal index %s: %v", key, err))
		}
		all = append(all, ids...)
	}
	return all
}

func statusIndexKey(status InvestmentStatus) string {
	return idxInvestmentsByStatus + status.String()
}

// moveStatusIndex re-files an investment id when its lifecycle state changes.
func moveStatusIndex(id uint64, from, to InvestmentStatus) {
	if from != StatusUnspecified {
		removeIDFromIndex(statusIndexKey(from), id)
	}
	addIDToIndex(statusIndexKey(to), id)
}
