// Package targetscan loads TargetScan reference tables: gene metadata,
// miRNA family assignments, and predicted miRNA–gene target pairs.
package targetscan

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Standard file names inside a TargetScan directory.
const (
	GeneInfoFile         = "Gene_info.txt"
	MirFamilyInfoFile    = "miR_Family_Info.txt"
	PredictedTargetsFile = "Predicted_Targets_Info.default_predictions.txt"
)

// GeneInfo holds the TargetScan annotation for one gene symbol.
type GeneInfo struct {
	GeneSymbol   string
	TranscriptID string
	Description  string
}

// TargetPair is one predicted miRNA-family → gene interaction.
type TargetPair struct {
	MirFamily  string
	GeneSymbol string
}

// LoadGeneInfo loads Gene_info.txt keyed by gene symbol.
// The header must carry "Gene symbol"; transcript and description columns
// are optional.
func LoadGeneInfo(path string) (map[string]GeneInfo, error) {
	rows, header, err := readTSV(path)
	if err != nil {
		return nil, fmt.Errorf("gene info: %w", err)
	}

	symbolIdx, ok := header["Gene symbol"]
	if !ok {
		return nil, fmt.Errorf("gene info: missing 'Gene symbol' column")
	}
	transcriptIdx, hasTranscript := header["Transcript ID"]
	descIdx, hasDesc := header["Gene description"]

	info := make(map[string]GeneInfo)
	for _, fields := range rows {
		if len(fields) <= symbolIdx {
			continue
		}
		symbol := strings.TrimSpace(fields[symbolIdx])
		if symbol == "" {
			continue
		}
		gi := GeneInfo{GeneSymbol: symbol}
		if hasTranscript && transcriptIdx < len(fields) {
			gi.TranscriptID = strings.TrimSpace(fields[transcriptIdx])
		}
		if hasDesc && descIdx < len(fields) {
			gi.Description = strings.TrimSpace(fields[descIdx])
		}
		info[symbol] = gi
	}
	return info, nil
}

// LoadMirFamilyInfo loads miR_Family_Info.txt as a MiRBase ID → family map.
func LoadMirFamilyInfo(path string) (map[string]string, error) {
	rows, header, err := readTSV(path)
	if err != nil {
		return nil, fmt.Errorf("miR family info: %w", err)
	}

	idIdx, ok := header["MiRBase ID"]
	if !ok {
		return nil, fmt.Errorf("miR family info: missing 'MiRBase ID' column")
	}
	famIdx, ok := header["miR family"]
	if !ok {
		return nil, fmt.Errorf("miR family info: missing 'miR family' column")
	}

	families := make(map[string]string)
	for _, fields := range rows {
		if len(fields) <= idIdx || len(fields) <= famIdx {
			continue
		}
		id := strings.TrimSpace(fields[idIdx])
		if id == "" {
			continue
		}
		families[id] = strings.TrimSpace(fields[famIdx])
	}
	return families, nil
}

// LoadPredictedTargets loads the default-predictions target table.
func LoadPredictedTargets(path string) ([]TargetPair, error) {
	rows, header, err := readTSV(path)
	if err != nil {
		return nil, fmt.Errorf("predicted targets: %w", err)
	}

	famIdx, ok := header["miR Family"]
	if !ok {
		return nil, fmt.Errorf("predicted targets: missing 'miR Family' column")
	}
	geneIdx, ok := header["Gene Symbol"]
	if !ok {
		return nil, fmt.Errorf("predicted targets: missing 'Gene Symbol' column")
	}

	var pairs []TargetPair
	for _, fields := range rows {
		if len(fields) <= famIdx || len(fields) <= geneIdx {
			continue
		}
		fam := strings.TrimSpace(fields[famIdx])
		gene := strings.TrimSpace(fields[geneIdx])
		if fam == "" || gene == "" {
			continue
		}
		pairs = append(pairs, TargetPair{MirFamily: fam, GeneSymbol: gene})
	}
	return pairs, nil
}

// readTSV reads a headered tab-separated file, returning data rows and a
// column-name → index map.
func readTSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 4*1024*1024)

	if !scanner.Scan() {
		return nil, nil, fmt.Errorf("empty file")
	}
	header := make(map[string]int)
	for i, col := range strings.Split(scanner.Text(), "\t") {
		header[strings.TrimSpace(col)] = i
	}

	var rows [][]string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return rows, header, nil
}
