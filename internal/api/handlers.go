package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bio2bel/ctd/internal/database"
)

const (
	defaultLimit = 25
	maxLimit     = 1000
)

// limitOffset parses pagination parameters with sane bounds
func limitOffset(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func (s *Server) handleGetChemical(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	chemical, err := s.db.GetChemical(id)
	if errors.Is(err, database.ErrNotFound) {
		// Fall back to CAS registry number lookup
		chemical, err = s.db.GetChemicalByCAS(id)
	}
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "chemical not found: "+id)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, chemical)
}

func (s *Server) handleListChemicals(w http.ResponseWriter, r *http.Request) {
	limit, offset := limitOffset(r)

	chemicals, err := s.db.ListChemicals(limit, offset)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"chemicals": chemicals,
		"limit":     limit,
		"offset":    offset,
		"count":     len(chemicals),
	})
}

func (s *Server) handleChemicalInteractions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	limit, _ := limitOffset(r)

	ixns, err := s.db.GetChemGeneIxnsByChemical(id, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"chemical_id":  id,
		"interactions": ixns,
		"count":        len(ixns),
	})
}

func (s *Server) handleChemicalDiseases(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	limit, _ := limitOffset(r)

	associations, err := s.db.GetChemicalDiseases(id, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"chemical_id": id,
		"diseases":    associations,
		"count":       len(associations),
	})
}

func (s *Server) handleGetDisease(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	disease, err := s.db.GetDisease(id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "disease not found: "+id)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, disease)
}

func (s *Server) handleListDiseases(w http.ResponseWriter, r *http.Request) {
	limit, offset := limitOffset(r)

	diseases, err := s.db.ListDiseases(limit, offset)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"diseases": diseases,
		"limit":    limit,
		"offset":   offset,
		"count":    len(diseases),
	})
}

func (s *Server) handleGetGene(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var gene *database.Gene
	var err error
	if geneID, convErr := strconv.ParseInt(id, 10, 64); convErr == nil {
		gene, err = s.db.GetGene(geneID)
	} else {
		gene, err = s.db.GetGeneBySymbol(id)
	}
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "gene not found: "+id)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, gene)
}

func (s *Server) handleListGenes(w http.ResponseWriter, r *http.Request) {
	limit, offset := limitOffset(r)

	genes, err := s.db.ListGenes(limit, offset)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"genes":  genes,
		"limit":  limit,
		"offset": offset,
		"count":  len(genes),
	})
}

func (s *Server) handleGeneInteractions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	limit, _ := limitOffset(r)

	geneID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		gene, lookupErr := s.db.GetGeneBySymbol(id)
		if errors.Is(lookupErr, database.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "gene not found: "+id)
			return
		}
		if lookupErr != nil {
			s.writeError(w, http.StatusInternalServerError, lookupErr.Error())
			return
		}
		geneID = gene.GeneID
	}

	ixns, err := s.db.GetChemGeneIxnsByGene(geneID, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"gene_id":      geneID,
		"interactions": ixns,
		"count":        len(ixns),
	})
}

func (s *Server) handleGetPathway(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	pathway, err := s.db.GetPathway(id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "pathway not found: "+id)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, pathway)
}

func (s *Server) handleGetAction(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	action, err := s.db.GetAction(code)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "action not found: "+code)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, action)
}

func (s *Server) handleGetInteraction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "interaction id must be numeric")
		return
	}

	ixn, err := s.db.GetChemGeneIxn(id)
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("interaction not found: %d", id))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ixn)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "missing query parameter: q")
		return
	}
	limit, _ := limitOffset(r)

	results, err := s.fts.Search(query, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStatistics()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	info, err := s.db.GetInfo()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tables":        stats,
		"database_path": info.Path,
		"database_size": info.Size,
	})
}
