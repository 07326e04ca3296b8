package internal

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sisoputnfrba/minios/kernel/pkg/kernel"
)

func ImprimirProcesos(w io.Writer, procesos []kernel.ProcesoSnapshot) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PID\tESTADO\tPÁGINAS\tRÁFAGA\tRESTANTE")
	for _, p := range procesos {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", p.PID, p.Estado, p.Paginas, p.Rafaga, p.Restante)
	}
	_ = tw.Flush()
}

func ImprimirMarcos(w io.Writer, marcos []kernel.EstadoMarco) {
	_, _ = fmt.Fprintf(w, "Mapa de memoria (%d marcos):\n", len(marcos))
	for _, m := range marcos {
		if m.Libre {
			_, _ = fmt.Fprintf(w, "Marco %2d: Libre\n", m.Marco)
			continue
		}
		_, _ = fmt.Fprintf(w, "Marco %2d: Asignado al PID %d\n", m.Marco, m.PID)
	}
}

// ImprimirRecursos muestra los disponibles y, por proceso, la asignación y la necesidad restante
func ImprimirRecursos(w io.Writer, estado kernel.EstadoRecursos) {
	_, _ = fmt.Fprintf(w, "Totales: %v  Disponibles: %v\n", estado.Totales, estado.Disponibles)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PID\tMÁXIMO\tASIGNADO\tNECESIDAD")
	for pid := range estado.Asignacion {
		_, _ = fmt.Fprintf(tw, "%d\t%v\t%v\t%v\n",
			pid, estado.MaxNecesidad[pid], estado.Asignacion[pid], estado.Necesidad[pid])
	}
	_ = tw.Flush()
}

func ImprimirTablaDePaginas(w io.Writer, pid int, tabla []kernel.EntradaPagina) {
	_, _ = fmt.Fprintf(w, "Tabla de páginas del PID %d:\n", pid)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PÁGINA\tMARCO")
	for pagina, entrada := range tabla {
		if !entrada.Valida {
			_, _ = fmt.Fprintf(tw, "%d\t-\n", pagina)
			continue
		}
		_, _ = fmt.Fprintf(tw, "%d\t%d\n", pagina, entrada.Marco)
	}
	_ = tw.Flush()
}
