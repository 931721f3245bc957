// Package console implements the interactive budget menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/SergeyParamoshkin/presupuesto/internal/article"
	"github.com/SergeyParamoshkin/presupuesto/internal/model"
)

const (
	msgInvalidInput = "❌ Entrada inválida. Por favor, asegúrese de ingresar valores correctos."
	msgNotFound     = "❌ No se encontró un artículo con ese ID."
	msgBadOption    = "❌ Opción no válida. Intente nuevamente."
	msgGoodbye      = "👋 ¡Hasta luego!"
)

type handler func(ctx context.Context) article.Outcome

type option struct {
	key   string
	label string
	run   handler
}

// Console runs one operator transaction at a time against a Service.
type Console struct {
	svc     *article.Service
	in      *bufio.Reader
	out     io.Writer
	options []option
	// err is the first read failure other than end of input.
	err error
}

func New(svc *article.Service, in io.Reader, out io.Writer) *Console {
	c := &Console{
		svc: svc,
		in:  bufio.NewReader(in),
		out: out,
	}
	c.options = []option{
		{"1", "Registrar nuevo artículo", c.Create},
		{"2", "Buscar artículo por ID", c.Read},
		{"3", "Editar artículo existente", c.Update},
		{"4", "Eliminar artículo existente", c.Delete},
		{"5", "Ver listado de artículos", c.List},
	}

	return c
}

// Run shows the menu until the operator picks the exit option or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		c.println("\n=== Sistema de Registro de Presupuesto ===")
		for _, o := range c.options {
			c.printf("%s. %s\n", o.key, o.label)
		}
		c.println("6. Salir")

		choice, ok := c.prompt("Seleccione una opción: ")
		if c.err != nil {
			return fmt.Errorf("read input: %w", c.err)
		}
		if !ok || choice == "6" {
			c.println(msgGoodbye)

			return nil
		}

		if h := c.lookup(choice); h != nil {
			h(ctx)
		} else {
			c.println(msgBadOption)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (c *Console) lookup(key string) handler {
	for _, o := range c.options {
		if o.key == key {
			return o.run
		}
	}

	return nil
}

// Create asks for the three fields and registers a new article.
func (c *Console) Create(ctx context.Context) article.Outcome {
	description, _ := c.prompt("Descripción del artículo: ")
	quantity, _ := c.prompt("Cantidad (en números): ")
	category, _ := c.prompt("Categoría del artículo: ")

	a, err := c.svc.Create(ctx, description, quantity, category)
	outcome := article.OutcomeOf(err)
	switch outcome {
	case article.OutcomeOK:
		c.printf("✅ Artículo registrado exitosamente con ID: %s\n", a.ID)
	case article.OutcomeInvalid:
		c.println(msgInvalidInput)
	default:
		c.printf("❌ Error al registrar el artículo: %v\n", err)
	}

	return outcome
}

func (c *Console) Read(ctx context.Context) article.Outcome {
	id, _ := c.prompt("Ingrese el ID del artículo a buscar: ")

	a, err := c.svc.Get(ctx, id)
	outcome := article.OutcomeOf(err)
	switch outcome {
	case article.OutcomeOK:
		c.println("\n📋 Detalles del artículo:")
		c.printf("ID: %s\n", a.ID)
		c.printDetails(a.Description, a.Quantity, a.Category)
	case article.OutcomeNotFound:
		c.println(msgNotFound)
	default:
		c.printf("❌ Error al buscar el artículo: %v\n", err)
	}

	return outcome
}

// Update shows the current values, then writes each replacement that was not
// left blank.
func (c *Console) Update(ctx context.Context) article.Outcome {
	id, _ := c.prompt("Ingrese el ID del artículo a editar: ")

	a, err := c.svc.Get(ctx, id)
	if err == nil {
		c.println("\n📋 Detalles actuales del artículo:")
		c.printDetails(a.Description, a.Quantity, a.Category)

		var p model.Patch
		p.Description, _ = c.prompt("Nueva descripción (dejar en blanco para no cambiar): ")
		p.Quantity, _ = c.prompt("Nueva cantidad (dejar en blanco para no cambiar): ")
		p.Category, _ = c.prompt("Nueva categoría (dejar en blanco para no cambiar): ")

		_, err = c.svc.Update(ctx, id, p)
	}

	outcome := article.OutcomeOf(err)
	switch outcome {
	case article.OutcomeOK:
		c.println("✅ Artículo actualizado exitosamente.")
	case article.OutcomeNotFound:
		c.println(msgNotFound)
	default:
		c.printf("❌ Error al editar el artículo: %v\n", err)
	}

	return outcome
}

func (c *Console) Delete(ctx context.Context) article.Outcome {
	id, _ := c.prompt("Ingrese el ID del artículo a eliminar: ")

	err := c.svc.Delete(ctx, id)
	outcome := article.OutcomeOf(err)
	switch outcome {
	case article.OutcomeOK:
		c.println("✅ Artículo eliminado exitosamente.")
	case article.OutcomeNotFound:
		c.println(msgNotFound)
	default:
		c.printf("❌ Error al eliminar el artículo: %v\n", err)
	}

	return outcome
}

// List prints every article as a numbered line.
func (c *Console) List(ctx context.Context) article.Outcome {
	articles, err := c.svc.List(ctx)
	if err != nil {
		c.printf("❌ Error al mostrar el listado de artículos: %v\n", err)

		return article.OutcomeOf(err)
	}

	if len(articles) == 0 {
		c.println("❌ No hay artículos registrados.")

		return article.OutcomeOK
	}

	c.println("\n📜 Listado de artículos:")
	for i, a := range articles {
		c.printf("%d. ID: %s, Descripción: %s, Cantidad: %s, Categoría: %s\n",
			i+1, a.ID, a.Description, a.Quantity, a.Category)
	}

	return article.OutcomeOK
}

// prompt writes label and reads one line of any length. ok is false once
// input is exhausted or a read fails; a failure is kept in c.err.
func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if c.err != nil {
		return "", false
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			c.err = err

			return "", false
		}
		if line == "" {
			return "", false
		}
	}

	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), true
}

func (c *Console) printDetails(description, quantity, category string) {
	c.printf("Descripción: %s\n", description)
	c.printf("Cantidad: %s\n", quantity)
	c.printf("Categoría: %s\n", category)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}
